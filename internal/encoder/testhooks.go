package encoder

import (
	"context"

	"autovideo/internal/media/ffprobe"
)

// inspectSource is the ffprobe function used by the encoder package.
// It is a package-level variable so tests can override it.
var inspectSource = ffprobe.Inspect

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := inspectSource
	inspectSource = fn
	return func() {
		inspectSource = previous
	}
}
