package main

import (
	"testing"

	"autovideo/internal/testsupport"
)

func TestStatusReportsEnvironment(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}

	requireContains(t, out, "== Configuration ==")
	requireContains(t, out, "Config file")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "512px frames at 10 fps, standard quality")
	requireContains(t, out, "bundled")

	requireContains(t, out, "== Directories ==")
	requireContains(t, out, "Staging directory")
	requireContains(t, out, "Log directory")
	requireContains(t, out, "[OK]")
	// output dir is created per batch, its absence is informational
	requireContains(t, out, "created on first conversion")

	requireContains(t, out, "== External Tools ==")
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "FFprobe")
}

func TestStatusFlagsMissingBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PATH", t.TempDir())

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "Extracts frames and audio from source videos")
}
