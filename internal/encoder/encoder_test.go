package encoder_test

import (
	"context"
	"errors"
	"testing"

	"autovideo/internal/encoder"
	"autovideo/internal/media/ffprobe"
	"autovideo/internal/services"
)

func stubProbe(t *testing.T, result ffprobe.Result, probeErr error) {
	t.Helper()
	restore := encoder.SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return result, probeErr
	})
	t.Cleanup(restore)
}

func TestAnalyzePredictsFrameCount(t *testing.T) {
	stubProbe(t, ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "video", Width: 640, Height: 480},
			{CodecType: "audio"},
		},
		Format: ffprobe.Format{Duration: "30.0"},
	}, nil)

	enc := encoder.New(nil, nil)
	analysis, err := enc.Analyze(context.Background(), "in.mp4", 20)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.FrameCount != 600 {
		t.Fatalf("frame count = %d, want 600", analysis.FrameCount)
	}
	if analysis.Truncated {
		t.Fatal("unexpected truncation")
	}
	if !analysis.HasAudio {
		t.Fatal("expected audio stream")
	}
	if analysis.Width != 640 || analysis.Height != 480 {
		t.Fatalf("dimensions = %dx%d, want 640x480", analysis.Width, analysis.Height)
	}
}

func TestAnalyzeFlagsOverlongVideos(t *testing.T) {
	stubProbe(t, ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "video", Width: 320, Height: 240}},
		Format:  ffprobe.Format{Duration: "1000"},
	}, nil)

	enc := encoder.New(nil, nil)
	analysis, err := enc.Analyze(context.Background(), "long.mp4", 10)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.FrameCount != 10000 {
		t.Fatalf("frame count = %d, want 10000", analysis.FrameCount)
	}
	if !analysis.Truncated {
		t.Fatal("expected truncation for a video beyond mesh capacity")
	}
	if analysis.HasAudio {
		t.Fatal("expected no audio stream")
	}
}

func TestAnalyzeFallsBackToStreamMetadata(t *testing.T) {
	stubProbe(t, ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "video", Width: 320, Height: 240, NBFrames: "120", AvgFrameRate: "24/1"},
		},
	}, nil)

	enc := encoder.New(nil, nil)
	analysis, err := enc.Analyze(context.Background(), "in.mp4", 10)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Duration != 5 {
		t.Fatalf("duration = %v, want 5", analysis.Duration)
	}
	if analysis.FrameCount != 50 {
		t.Fatalf("frame count = %d, want 50", analysis.FrameCount)
	}
}

func TestAnalyzeRejectsAudioOnlySources(t *testing.T) {
	stubProbe(t, ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "audio"}},
		Format:  ffprobe.Format{Duration: "12"},
	}, nil)

	enc := encoder.New(nil, nil)
	if _, err := enc.Analyze(context.Background(), "song.mp3", 10); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestAnalyzeRejectsUnknownDuration(t *testing.T) {
	stubProbe(t, ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "video", Width: 320, Height: 240}},
	}, nil)

	enc := encoder.New(nil, nil)
	if _, err := enc.Analyze(context.Background(), "in.mp4", 10); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestAnalyzeWrapsProbeFailures(t *testing.T) {
	stubProbe(t, ffprobe.Result{}, errors.New("ffprobe exploded"))

	enc := encoder.New(nil, nil)
	if _, err := enc.Analyze(context.Background(), "in.mp4", 10); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("err = %v, want external tool error", err)
	}
}

func TestRenderValidatesRequest(t *testing.T) {
	enc := encoder.New(nil, nil)
	cases := []encoder.Request{
		{},
		{Source: "in.mp4", VideoToken: "CLIP", StagingDir: "s", OutputDir: "o", FrameRate: 10, FrameSize: 512},
		{Source: "in.mp4", ModToken: "MOD", VideoToken: "CLIP", StagingDir: "s", OutputDir: "o", FrameSize: 512},
		{Source: "in.mp4", ModToken: "MOD", VideoToken: "CLIP", StagingDir: "s", OutputDir: "o", FrameRate: 10},
	}
	for i, req := range cases {
		if _, err := enc.Render(context.Background(), req, encoder.Analysis{}); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("case %d: err = %v, want validation error", i, err)
		}
	}
}
