package preflight

import (
	"context"

	"autovideo/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.Templates.Dir != "" {
		results = append(results, CheckTemplateOverrides(cfg.Templates.Dir))
	}

	if cfg.History.Enabled {
		results = append(results, CheckHistory(ctx, cfg))
	}

	return results
}
