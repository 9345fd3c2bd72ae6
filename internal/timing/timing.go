package timing

import "fmt"

// Template geometry shared by every mesh family. Texture atlases hold 16x16
// frames and the animation timeline is authored at 10 frames per second, so
// one fully occupied grid plays for 25.6 seconds.
const (
	NativeRate    = 10
	FramesPerGrid = 256
	MaxGrids      = 24
	CompactGrids  = 8
	MaxFrames     = MaxGrids * FramesPerGrid
)

// GridSeconds is the playback duration of a fully occupied grid on the
// native timeline.
const GridSeconds float32 = 25.6

// SpeedSentinel marks the global playback speed multiplier in a mesh
// template.
const SpeedSentinel float32 = 1313

const (
	textKeySentinelBase    = 121200
	controllerSentinelBase = 141400
)

// TextKeySentinel returns the reserved constant marking the text-key time
// of the given slot.
func TextKeySentinel(slot int) float32 {
	return float32(textKeySentinelBase + slot)
}

// ControllerSentinel returns the reserved constant marking the controller
// stop time of the given slot.
func ControllerSentinel(slot int) float32 {
	return float32(controllerSentinelBase + slot)
}

// Controller returns the stop time for one animation slot. Slots before the
// final occupied grid run for the full grid duration, the final occupied
// grid ends at stopTime, and slots past the occupied range stay inert.
func Controller(slot, gridCount int, stopTime float32) float32 {
	switch {
	case slot < gridCount:
		return GridSeconds
	case slot == gridCount:
		return stopTime
	default:
		return 0
	}
}

// TextKey rescales a controller stop time from the native timeline to the
// actual playback rate. Inert slots and native-rate playback keep the
// controller value unchanged.
func TextKey(controller float32, frameRate int) float32 {
	if controller == 0 || frameRate == NativeRate {
		return controller
	}
	return controller / float32(frameRate) * NativeRate
}

// Speed returns the global playback speed multiplier for frameRate.
func Speed(frameRate int) float32 {
	return float32(frameRate) / NativeRate
}

// Grids maps an extracted frame count to the number of occupied grids and
// the stop time of the final one.
func Grids(frameCount int) (int, float32, error) {
	if frameCount <= 0 {
		return 0, 0, fmt.Errorf("frame count must be positive, got %d", frameCount)
	}
	if frameCount > MaxFrames {
		return 0, 0, fmt.Errorf("frame count %d exceeds the %d-grid capacity of %d frames", frameCount, MaxGrids, MaxFrames)
	}
	gridCount := (frameCount + FramesPerGrid - 1) / FramesPerGrid
	finalFrames := frameCount - (gridCount-1)*FramesPerGrid
	return gridCount, float32(finalFrames) / NativeRate, nil
}
