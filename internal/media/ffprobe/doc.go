// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no converter-specific dependencies and could be
// extracted as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods expose what the frame pipeline needs: the video stream's
// dimensions and frame rate, audio presence, and the container duration.
package ffprobe
