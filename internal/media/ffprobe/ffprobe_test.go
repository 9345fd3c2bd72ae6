package ffprobe

import "testing"

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Width: 640, Height: 480},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
		},
	}
	video, ok := result.VideoStream()
	if !ok {
		t.Fatal("expected a video stream")
	}
	if video.Width != 640 || video.Height != 480 {
		t.Fatalf("unexpected dimensions %dx%d", video.Width, video.Height)
	}
	if !result.HasAudio() {
		t.Fatal("expected audio stream")
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestResultHelpersHandleMissingStreams(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video"}},
		Format:  Format{Duration: "bad"},
	}
	if result.HasAudio() {
		t.Fatal("expected no audio stream")
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}

	var empty Result
	if _, ok := empty.VideoStream(); ok {
		t.Fatal("expected no video stream")
	}
}

func TestStreamFrameRate(t *testing.T) {
	cases := []struct {
		ratio string
		want  float64
	}{
		{ratio: "30000/1001", want: 30000.0 / 1001.0},
		{ratio: "25/1", want: 25},
		{ratio: "24", want: 24},
		{ratio: "0/0", want: 0},
		{ratio: "", want: 0},
		{ratio: "garbage", want: 0},
	}
	for _, tc := range cases {
		stream := Stream{AvgFrameRate: tc.ratio}
		if got := stream.FrameRate(); got != tc.want {
			t.Fatalf("FrameRate(%q) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}

func TestStreamFrameCount(t *testing.T) {
	if got := (Stream{NBFrames: "420"}).FrameCount(); got != 420 {
		t.Fatalf("FrameCount = %d, want 420", got)
	}
	if got := (Stream{NBFrames: ""}).FrameCount(); got != 0 {
		t.Fatalf("FrameCount = %d, want 0", got)
	}
	if got := (Stream{NBFrames: "nope"}).FrameCount(); got != 0 {
		t.Fatalf("FrameCount = %d, want 0", got)
	}
}
