// Package timing computes the per-slot animation values injected into mesh
// templates.
//
// Every mesh template carries 24 animation grid slots whose timing fields
// are populated with reserved sentinel constants. This package maps a
// video's occupied grid count, final stop time, and playback frame rate to
// the controller and text-key values that replace those sentinels, plus the
// single global speed multiplier. All arithmetic is done in float32 so the
// patched bit patterns match what the game engine reads.
package timing
