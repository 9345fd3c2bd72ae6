package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"autovideo/internal/deps"
	"autovideo/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the conversion environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			path, exists, err := ctx.configPath()
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintln(out, renderStatusLine("Config file", statusOK, path, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Config file", statusInfo, fmt.Sprintf("%s (missing, defaults in use)", path), colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Conversion", statusInfo,
				fmt.Sprintf("%dpx frames at %d fps, %s quality", cfg.Convert.FrameSize, cfg.Convert.FrameRate, cfg.Convert.Quality), colorize))
			templates := "bundled"
			if dir := strings.TrimSpace(cfg.Templates.Dir); dir != "" {
				templates = dir
			}
			fmt.Fprintln(out, renderStatusLine("Templates", statusInfo, templates, colorize))

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, outputDirLine(cfg.Paths.OutputDir, colorize))
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("External Tools", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range preflight.CheckSystemDeps(cfg) {
				if !status.Available {
					fmt.Fprintln(out, renderStatusLine(status.Name, statusError,
						fmt.Sprintf("%s (%s)", status.Detail, status.Description), colorize))
					continue
				}
				detail := status.Command
				if version := deps.Version(cmd.Context(), status.Command); version != "" {
					detail = version
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, statusOK, detail, colorize))
			}
			return nil
		},
	}
}

// outputDirLine reports the output directory without failing the check
// when it has not been created yet; the assembler makes it per batch.
func outputDirLine(path string, colorize bool) string {
	const label = "Output directory"
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return renderStatusLine(label, statusInfo, fmt.Sprintf("%s (created on first conversion)", path), colorize)
		}
		return renderStatusLine(label, statusError, fmt.Sprintf("%s (error: %v)", path, err), colorize)
	}
	result := preflight.CheckDirectoryAccess(label, path)
	kind := statusError
	if result.Passed {
		kind = statusOK
	}
	return renderStatusLine(label, kind, result.Detail, colorize)
}
