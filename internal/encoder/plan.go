package encoder

import (
	"fmt"
	"path/filepath"

	"autovideo/internal/timing"
)

// cellsPerRow is the number of frame cells along one edge of an atlas.
// A full atlas holds cellsPerRow*cellsPerRow frames, which matches
// timing.FramesPerGrid.
const cellsPerRow = 16

// framePattern names extracted frames so that lexical order equals
// playback order.
const framePattern = "frame_%05d.png"

// framePlan describes how source frames are scaled into atlas cells.
type framePlan struct {
	CellSize    int
	ScaleWidth  int
	ScaleHeight int
	Filter      string
}

// planFrames builds the ffmpeg filter chain for frame extraction. In
// keep-aspect mode the source is scaled to fit inside the square cell
// and letterboxed with black; otherwise it is stretched to fill the
// cell.
func planFrames(frameRate, cellSize, sourceWidth, sourceHeight int, keepAspect bool) framePlan {
	plan := framePlan{CellSize: cellSize, ScaleWidth: cellSize, ScaleHeight: cellSize}
	if keepAspect && sourceWidth > 0 && sourceHeight > 0 {
		aspect := float64(sourceWidth) / float64(sourceHeight)
		if aspect > 1 {
			plan.ScaleHeight = scaleDim(float64(cellSize) / aspect)
		} else if aspect < 1 {
			plan.ScaleWidth = scaleDim(float64(cellSize) * aspect)
		}
	}
	filter := fmt.Sprintf("fps=%d,scale=%d:%d", frameRate, plan.ScaleWidth, plan.ScaleHeight)
	if plan.ScaleWidth != cellSize || plan.ScaleHeight != cellSize {
		filter = fmt.Sprintf("%s,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black", filter, cellSize, cellSize)
	}
	plan.Filter = filter
	return plan
}

func scaleDim(value float64) int {
	dim := int(value)
	if dim < 1 {
		return 1
	}
	return dim
}

// gridFrames selects the frame paths belonging to the given grid. Grids
// are numbered from 1; the final grid of a video may return fewer than
// timing.FramesPerGrid paths.
func gridFrames(frames []string, grid int) []string {
	start := (grid - 1) * timing.FramesPerGrid
	if start < 0 || start >= len(frames) {
		return nil
	}
	end := start + timing.FramesPerGrid
	if end > len(frames) {
		end = len(frames)
	}
	return frames[start:end]
}

// texturePath returns the atlas destination for one grid of a video.
func texturePath(outputDir, modToken, videoToken string, grid int) string {
	return filepath.Join(outputDir, "textures", "Videos", modToken, fmt.Sprintf("%s_%d.dds", videoToken, grid))
}

// audioPath returns the destination of the extracted audio track.
func audioPath(outputDir, audioName string) string {
	return filepath.Join(outputDir, "sound", "Videos", audioName+".wav")
}
