package main

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"github.com/spf13/cobra"

	"autovideo/internal/assembly"
	"autovideo/internal/config"
	"autovideo/internal/history"
	"autovideo/internal/logging"
	"autovideo/internal/preflight"
	"autovideo/internal/scriptgen"
	"autovideo/internal/services"
)

// batchRunner is satisfied by assembly.Assembler; tests substitute their
// own runner through newBatchRunner.
type batchRunner interface {
	Run(ctx context.Context, req assembly.Request) (*assembly.BatchResult, error)
}

var newBatchRunner = func(cfg *config.Config, logger *slog.Logger, opts ...assembly.Option) batchRunner {
	return assembly.New(cfg, logger, opts...)
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		inputFlag      string
		nameFlag       string
		espFlag        string
		despFlag       string
		scriptInfoFlag string
		qualityFlag    string
		sizeFlag       int
		rateFlag       int
		keepAspectFlag bool
		shortNamesFlag bool
		scriptFlag     bool
		yesFlag        bool
	)

	cmd := &cobra.Command{
		Use:   "convert <mod-name>",
		Short: "Convert videos into meshes, textures, and plugin records",
		Long: `Convert turns one video file or a directory of videos into the binary
assets a Videos of the Wasteland style mod needs: DDS texture atlases, animated
.nif meshes for the television, projector, and drive-in surfaces, and an .esp
plugin with one record set per video. With --generate-script the plugin step is
replaced by an xEdit pascal script for batches beyond the plugin's ten slots.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := checkExternalTools(cfg); err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			req := assembly.Request{
				ModName:        strings.TrimSpace(args[0]),
				Input:          inputFlag,
				VideoName:      nameFlag,
				PluginPath:     espFlag,
				DriveInPath:    despFlag,
				FrameSize:      sizeFlag,
				FrameRate:      rateFlag,
				Quality:        qualityFlag,
				KeepAspect:     keepAspectFlag,
				ShortNames:     shortNamesFlag,
				GenerateScript: scriptFlag,
			}
			applyConvertDefaults(cmd, cfg, &req)

			if path := strings.TrimSpace(scriptInfoFlag); path != "" {
				info, err := scriptgen.LoadOptions(path)
				if err != nil {
					return err
				}
				req.ScriptInfo = info
			}

			opts := []assembly.Option{assembly.WithConfirmer(newConfirmer(cmd, yesFlag))}
			if cfg.History.Enabled {
				store, err := history.Open(cfg)
				if err != nil {
					logger.Warn("conversion history unavailable", logging.Error(err))
				} else {
					defer store.Close()
					opts = append(opts, assembly.WithHistory(store))
				}
			}

			result, err := newBatchRunner(cfg, logger, opts...).Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			printBatchSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputFlag, "input", "i", "", "Video file or directory of videos to convert")
	flags.StringVarP(&nameFlag, "video-name", "n", "", "Override the derived name for a single-file input")
	flags.StringVar(&espFlag, "esp", "", "Replacement television/projector plugin template")
	flags.StringVar(&despFlag, "desp", "", "Replacement drive-in plugin template")
	flags.IntVarP(&sizeFlag, "size", "s", 512, "Frame cell edge in pixels, must be a power of two")
	flags.IntVarP(&rateFlag, "framerate", "r", 10, "Playback frame rate for videos without a rate suffix")
	flags.StringVarP(&qualityFlag, "quality", "q", config.QualityStandard, "Texture quality: standard or high")
	flags.BoolVarP(&keepAspectFlag, "keep-aspect-ratio", "k", false, "Letterbox frames instead of stretching them square")
	flags.BoolVar(&shortNamesFlag, "short-names", false, "Cut over-long video names to ten characters")
	flags.BoolVarP(&scriptFlag, "generate-script", "g", false, "Emit an xEdit script instead of patching plugins")
	flags.StringVar(&scriptInfoFlag, "script-info", "", "JSON file customizing the generated script's esp name and record prefixes")
	flags.BoolVarP(&yesFlag, "yes", "y", false, "Answer every confirmation prompt with yes")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// checkExternalTools fails a conversion before any work starts when ffmpeg
// or ffprobe is missing, instead of surfacing an exec error mid-batch.
func checkExternalTools(cfg *config.Config) error {
	for _, status := range preflight.CheckSystemDeps(cfg) {
		if status.Available {
			continue
		}
		return services.Wrap(
			services.ErrConfiguration,
			"cli",
			"check external tools",
			fmt.Sprintf("%s is required; install it and make sure %q is on your PATH", status.Name, status.Command),
			nil,
		)
	}
	return nil
}

// applyConvertDefaults fills request fields from the configuration wherever
// the matching flag was left at its built-in default.
func applyConvertDefaults(cmd *cobra.Command, cfg *config.Config, req *assembly.Request) {
	flags := cmd.Flags()
	if !flags.Changed("size") {
		req.FrameSize = cfg.Convert.FrameSize
	}
	if !flags.Changed("framerate") {
		req.FrameRate = cfg.Convert.FrameRate
	}
	if !flags.Changed("quality") {
		req.Quality = cfg.Convert.Quality
	}
	if !flags.Changed("keep-aspect-ratio") {
		req.KeepAspect = cfg.Convert.KeepAspectRatio
	}
	if !flags.Changed("short-names") {
		req.ShortNames = cfg.Convert.ShortNames
	}
	if !flags.Changed("generate-script") {
		req.GenerateScript = cfg.Convert.GenerateScript
	}
}
