package encoder

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"autovideo/internal/timing"
)

// listFrames returns the extracted frame files in playback order.
// os.ReadDir sorts by filename, which matches playback order because of
// the zero-padded frame numbering.
func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	frames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "frame_") && strings.HasSuffix(name, ".png") {
			frames = append(frames, filepath.Join(dir, name))
		}
	}
	return frames, nil
}

// composeAtlas draws up to timing.FramesPerGrid frames into a square
// atlas, row by row from the top left. Cells without a frame stay
// opaque black.
func composeAtlas(framePaths []string, cellSize int) (*image.NRGBA, error) {
	edge := cellsPerRow * cellSize
	atlas := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	draw.Draw(atlas, atlas.Bounds(), image.NewUniform(color.NRGBA{A: 0xFF}), image.Point{}, draw.Src)
	if len(framePaths) > timing.FramesPerGrid {
		framePaths = framePaths[:timing.FramesPerGrid]
	}
	for i, path := range framePaths {
		img, err := loadFrame(path)
		if err != nil {
			return nil, err
		}
		col := i % cellsPerRow
		row := i / cellsPerRow
		cell := image.Rect(col*cellSize, row*cellSize, (col+1)*cellSize, (row+1)*cellSize)
		draw.Draw(atlas, cell, img, img.Bounds().Min, draw.Src)
	}
	return atlas, nil
}

func loadFrame(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
