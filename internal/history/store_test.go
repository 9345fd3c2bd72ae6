package history_test

import (
	"context"
	"testing"

	"autovideo/internal/history"
	"autovideo/internal/testsupport"
)

func TestRecordAndListBatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := store.Record(ctx, &history.Conversion{
		BatchID:    "batch-1",
		ModName:    "MyTV",
		VideoName:  "Intro",
		SourcePath: "/videos/intro.mp4",
		FrameSize:  512,
		FrameRate:  10,
		FrameCount: 300,
		GridCount:  2,
		HasAudio:   true,
		Status:     history.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned identifier")
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}

	if _, err := store.Record(ctx, &history.Conversion{
		BatchID:      "batch-1",
		ModName:      "MyTV",
		VideoName:    "Broken",
		Status:       history.StatusFailed,
		ErrorMessage: "frame extraction failed",
	}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if _, err := store.Record(ctx, &history.Conversion{
		BatchID:   "batch-2",
		ModName:   "Other",
		VideoName: "Clip",
		Status:    history.StatusCompleted,
	}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	batch, err := store.ListBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("ListBatch returned error: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 conversions in batch, got %d", len(batch))
	}
	if batch[0].VideoName != "Intro" || batch[1].VideoName != "Broken" {
		t.Fatalf("unexpected batch order: %s, %s", batch[0].VideoName, batch[1].VideoName)
	}
	if !batch[0].HasAudio {
		t.Fatal("expected audio flag to round-trip")
	}
	if batch[1].ErrorMessage != "frame extraction failed" {
		t.Fatalf("unexpected error message: %q", batch[1].ErrorMessage)
	}
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := store.Record(ctx, &history.Conversion{
			BatchID:   "batch",
			ModName:   "Mod",
			VideoName: name,
			Status:    history.StatusCompleted,
		}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	recent, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 conversions, got %d", len(recent))
	}
	if recent[0].VideoName != "Three" || recent[1].VideoName != "Two" {
		t.Fatalf("unexpected order: %s, %s", recent[0].VideoName, recent[1].VideoName)
	}
}

func TestStatsAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	entries := []history.Status{
		history.StatusCompleted,
		history.StatusCompleted,
		history.StatusRejected,
	}
	for i, status := range entries {
		if _, err := store.Record(ctx, &history.Conversion{
			BatchID:   "batch",
			ModName:   "Mod",
			VideoName: string(rune('A' + i)),
			Status:    status,
		}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats[history.StatusCompleted] != 2 || stats[history.StatusRejected] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}

	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected empty stats after clear, got %v", stats)
	}
}

func TestOpenRejectsVersionMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Reopening against the same database succeeds while versions match.
	second, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	second.Close()
	_ = store
}
