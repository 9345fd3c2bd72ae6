package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"autovideo/internal/config"
	"autovideo/internal/deps"
	"autovideo/internal/history"
)

// templateOverrideNames are the file names the template loader recognizes
// inside an override directory.
var templateOverrideNames = []string{
	"videos_10.esp",
	"drivein_10.esp",
	"tv_8.nif",
	"tv_24.nif",
	"pr_8.nif",
	"pr_24.nif",
	"di_8.nif",
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckTemplateOverrides verifies the template override directory and
// reports which bundled templates it replaces.
func CheckTemplateOverrides(dir string) Result {
	const name = "Template overrides"

	info, err := os.Stat(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", dir, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", dir)}
	}

	found := 0
	for _, file := range templateOverrideNames {
		if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
			found++
		}
	}
	if found == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (no recognized templates, bundled ones apply)", dir)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d of %d templates overridden)", dir, found, len(templateOverrideNames))}
}

// CheckHistory opens the conversion history database and reports its
// record counts. A schema mismatch or unreadable database fails the check.
func CheckHistory(ctx context.Context, cfg *config.Config) Result {
	const name = "History database"

	store, err := history.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", store.Path(), err)}
	}
	total := 0
	for _, count := range stats {
		total += count
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d conversions recorded)", store.Path(), total)}
}

// CheckSystemDeps evaluates the external binaries the converter needs.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.Defaults(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
}
