package encoder

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"autovideo/internal/config"
	"autovideo/internal/dds"
	"autovideo/internal/fileutil"
	"autovideo/internal/logging"
	"autovideo/internal/services"
	"autovideo/internal/timing"
)

// Request describes one video conversion job.
type Request struct {
	Source     string
	ModToken   string
	VideoToken string
	AudioName  string
	FrameRate  int
	FrameSize  int
	KeepAspect bool
	Quality    string
	StagingDir string
	OutputDir  string
}

// Analysis holds what probing the source established before extraction.
type Analysis struct {
	Duration   float64
	Width      int
	Height     int
	FrameCount int
	Truncated  bool
	HasAudio   bool
}

// Result reports the artifacts one conversion produced.
type Result struct {
	GridCount  int
	StopTime   float32
	FrameCount int
	Textures   []string
	AudioFile  string
}

// Encoder drives ffmpeg to produce the textures and audio track for
// single videos.
type Encoder struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs an encoder using the configured tool names.
func New(cfg *config.Config, logger *slog.Logger) *Encoder {
	enc := &Encoder{cfg: cfg}
	enc.SetLogger(logger)
	return enc
}

// SetLogger updates the encoder's logging destination while preserving
// component labeling.
func (e *Encoder) SetLogger(logger *slog.Logger) {
	e.logger = logging.NewComponentLogger(logger, "encoder")
}

func (e *Encoder) ffmpegBinary() string {
	if e.cfg != nil {
		return e.cfg.FFmpegBinary()
	}
	return "ffmpeg"
}

func (e *Encoder) ffprobeBinary() string {
	if e.cfg != nil {
		return e.cfg.FFprobeBinary()
	}
	return "ffprobe"
}

// Analyze probes the source and predicts how many frames extraction
// will produce at the requested rate. Truncated is set when the
// prediction exceeds the 24-grid mesh capacity; rendering then clamps
// to that capacity.
func (e *Encoder) Analyze(ctx context.Context, source string, frameRate int) (Analysis, error) {
	probe, err := inspectSource(ctx, e.ffprobeBinary(), source)
	if err != nil {
		return Analysis{}, services.Wrap(
			services.ErrExternalTool,
			"encoder",
			"probe source",
			fmt.Sprintf("Failed to inspect %q; confirm ffprobe is installed and the file is a video", source),
			err,
		)
	}
	stream, ok := probe.VideoStream()
	if !ok {
		return Analysis{}, services.Wrap(
			services.ErrValidation,
			"encoder",
			"probe source",
			fmt.Sprintf("%q contains no video stream", source),
			nil,
		)
	}
	duration := probe.DurationSeconds()
	if duration <= 0 {
		if frames, rate := stream.FrameCount(), stream.FrameRate(); frames > 0 && rate > 0 {
			duration = float64(frames) / rate
		}
	}
	if duration <= 0 {
		return Analysis{}, services.Wrap(
			services.ErrValidation,
			"encoder",
			"probe source",
			fmt.Sprintf("Could not determine the duration of %q", source),
			nil,
		)
	}
	frames := int(math.Ceil(duration * float64(frameRate)))
	if frames < 1 {
		frames = 1
	}
	return Analysis{
		Duration:   duration,
		Width:      stream.Width,
		Height:     stream.Height,
		FrameCount: frames,
		Truncated:  frames > timing.MaxFrames,
		HasAudio:   probe.HasAudio(),
	}, nil
}

// Render extracts frames and audio, composes the per-grid atlases, and
// writes the textures (plus the audio track when the source has one)
// into the output directory. Videos beyond the mesh capacity are
// clamped to timing.MaxFrames frames.
func (e *Encoder) Render(ctx context.Context, req Request, analysis Analysis) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}
	if err := resetDir(req.StagingDir); err != nil {
		return Result{}, services.Wrap(
			services.ErrTransient,
			"encoder",
			"prepare staging",
			"Failed to prepare the frame staging directory; set staging_dir to a writable path",
			err,
		)
	}
	defer os.RemoveAll(req.StagingDir)

	logger := logging.WithContext(ctx, e.logger)
	plan := planFrames(req.FrameRate, req.FrameSize, analysis.Width, analysis.Height, req.KeepAspect)
	logger.Info("extracting frames",
		logging.String("source", req.Source),
		logging.String("filter", plan.Filter),
		logging.Int("frame_rate", req.FrameRate),
	)
	pattern := filepath.Join(req.StagingDir, framePattern)
	if err := e.runFFmpeg(ctx, frameArgs(req.Source, pattern, plan), "extract frames",
		"FFmpeg frame extraction failed; check that the source file is readable"); err != nil {
		return Result{}, err
	}

	frames, err := listFrames(req.StagingDir)
	if err != nil {
		return Result{}, services.Wrap(
			services.ErrTransient,
			"encoder",
			"collect frames",
			"Failed to read extracted frames",
			err,
		)
	}
	if len(frames) == 0 {
		return Result{}, services.Wrap(
			services.ErrExternalTool,
			"encoder",
			"collect frames",
			fmt.Sprintf("FFmpeg produced no frames for %q", req.Source),
			nil,
		)
	}
	if len(frames) > timing.MaxFrames {
		frames = frames[:timing.MaxFrames]
	}

	gridCount, stopTime, err := timing.Grids(len(frames))
	if err != nil {
		return Result{}, services.Wrap(
			services.ErrValidation,
			"encoder",
			"compute grids",
			"Extracted frame count is outside mesh capacity",
			err,
		)
	}

	format := textureFormat(req.Quality)
	textures := make([]string, 0, gridCount)
	for grid := 1; grid <= gridCount; grid++ {
		atlas, err := composeAtlas(gridFrames(frames, grid), req.FrameSize)
		if err != nil {
			return Result{}, services.Wrap(
				services.ErrTransient,
				"encoder",
				"compose atlas",
				fmt.Sprintf("Failed to compose atlas %d", grid),
				err,
			)
		}
		encoded, err := dds.Encode(atlas, format)
		if err != nil {
			return Result{}, services.Wrap(
				services.ErrTransient,
				"encoder",
				"encode texture",
				fmt.Sprintf("Failed to encode atlas %d", grid),
				err,
			)
		}
		target := texturePath(req.OutputDir, req.ModToken, req.VideoToken, grid)
		if err := fileutil.WriteAsset(target, encoded); err != nil {
			return Result{}, services.Wrap(
				services.ErrTransient,
				"encoder",
				"write texture",
				fmt.Sprintf("Failed to write %s", target),
				err,
			)
		}
		textures = append(textures, target)
	}

	result := Result{
		GridCount:  gridCount,
		StopTime:   stopTime,
		FrameCount: len(frames),
		Textures:   textures,
	}

	if analysis.HasAudio {
		target, err := e.extractAudio(ctx, req)
		if err != nil {
			return Result{}, err
		}
		result.AudioFile = target
	} else {
		logger.Warn("source has no audio stream, skipping audio extraction",
			logging.String("source", req.Source))
	}

	logger.Info("encoded video",
		logging.Int("frames", result.FrameCount),
		logging.Int("grids", result.GridCount),
		logging.Int("textures", len(result.Textures)),
		logging.Bool("audio", result.AudioFile != ""),
	)
	return result, nil
}

// textureFormat maps the configured quality to a texture pixel format.
func textureFormat(quality string) dds.Format {
	if strings.EqualFold(strings.TrimSpace(quality), config.QualityHigh) {
		return dds.FormatRGBA8
	}
	return dds.FormatBC1
}

func validateRequest(req Request) error {
	missing := ""
	switch {
	case strings.TrimSpace(req.Source) == "":
		missing = "source path"
	case strings.TrimSpace(req.ModToken) == "" || strings.TrimSpace(req.VideoToken) == "":
		missing = "identifier tokens"
	case strings.TrimSpace(req.StagingDir) == "" || strings.TrimSpace(req.OutputDir) == "":
		missing = "staging and output directories"
	}
	if missing != "" {
		return services.Wrap(
			services.ErrValidation,
			"encoder",
			"validate request",
			fmt.Sprintf("Conversion request is missing the %s", missing),
			nil,
		)
	}
	if req.FrameRate <= 0 {
		return services.Wrap(
			services.ErrValidation,
			"encoder",
			"validate request",
			fmt.Sprintf("Frame rate must be positive, got %d", req.FrameRate),
			nil,
		)
	}
	if req.FrameSize <= 0 {
		return services.Wrap(
			services.ErrValidation,
			"encoder",
			"validate request",
			fmt.Sprintf("Frame size must be positive, got %d", req.FrameSize),
			nil,
		)
	}
	return nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
