package services_test

import (
	"context"
	"testing"

	"autovideo/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithBatchID(ctx, "batch-9")
	ctx = services.WithVideo(ctx, "Intro")
	ctx = services.WithStage(ctx, "encode")

	if id, ok := services.BatchIDFromContext(ctx); !ok || id != "batch-9" {
		t.Fatalf("unexpected batch id: %v %v", id, ok)
	}
	if video, ok := services.VideoFromContext(ctx); !ok || video != "Intro" {
		t.Fatalf("unexpected video: %v %v", video, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "encode" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
}

func TestContextHelpersIgnoreEmptyValues(t *testing.T) {
	ctx := services.WithBatchID(context.Background(), "")
	if _, ok := services.BatchIDFromContext(ctx); ok {
		t.Fatal("expected empty batch id to be ignored")
	}
	if _, ok := services.StageFromContext(context.Background()); ok {
		t.Fatal("expected missing stage to report absence")
	}
}
