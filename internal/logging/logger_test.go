package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log/slog"

	"autovideo/internal/config"
	"autovideo/internal/logging"
	"autovideo/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "yaml"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "yaml") {
		t.Fatalf("expected format in error, got %v", err)
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("conversion started", logging.String("video", "Intro"))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "autovideo.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "conversion started") {
		t.Fatalf("expected message in log file, got %q", string(data))
	}
	if !strings.Contains(string(data), `"video":"Intro"`) {
		t.Fatalf("expected attribute in log file, got %q", string(data))
	}
}

func TestComponentLoggerTagsRecords(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "encoder")
	// Base is a no-op logger; this only verifies construction does not panic.
	logger.Info("ignored")

	if logging.FieldComponent != "component" {
		t.Fatalf("unexpected component field name %q", logging.FieldComponent)
	}
}

func TestWithContextCarriesPipelineFields(t *testing.T) {
	ctx := services.WithBatchID(context.Background(), "batch-3")
	ctx = services.WithVideo(ctx, "intro")
	ctx = services.WithStage(ctx, "encode")

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WithContext(ctx, base).Info("converted")

	line := buf.String()
	for _, want := range []string{`"batch_id":"batch-3"`, `"video":"intro"`, `"stage":"encode"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in log line, got %q", want, line)
		}
	}
}

func TestWithContextLeavesBareContextAlone(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	if got := logging.WithContext(context.Background(), base); got != base {
		t.Fatal("expected the base logger back for a context without fields")
	}
}
