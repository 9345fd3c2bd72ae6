package assembly

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"autovideo/internal/identifier"
	"autovideo/internal/services"
)

// Video is one collected input source with its derived name and playback
// rate.
type Video struct {
	Name      string
	Path      string
	FrameRate int
}

// collectVideos expands the input path into the batch's video list. A file
// contributes itself, honoring the single-video name override; a directory
// contributes every regular file it holds, in name order. Names and
// per-video frame rates come from the file stems.
func collectVideos(input, nameOverride string, defaultRate int, shorten bool) ([]Video, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, services.Wrap(
			services.ErrValidation,
			"assembly",
			"collect inputs",
			fmt.Sprintf("File or folder does not exist: %s", input),
			nil,
		)
	}

	if info.Mode().IsRegular() {
		name, rate := identifier.FromPath(input, defaultRate, shorten)
		if override := strings.TrimSpace(nameOverride); override != "" {
			name = override
		}
		return []Video{{Name: name, Path: input, FrameRate: rate}}, nil
	}
	if !info.IsDir() {
		return nil, services.Wrap(
			services.ErrValidation,
			"assembly",
			"collect inputs",
			fmt.Sprintf("%s is neither a file nor a directory", input),
			nil,
		)
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, services.Wrap(
			services.ErrTransient,
			"assembly",
			"collect inputs",
			fmt.Sprintf("Could not read directory %s", input),
			err,
		)
	}
	videos := make([]Video, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(input, entry.Name())
		name, rate := identifier.FromPath(path, defaultRate, shorten)
		videos = append(videos, Video{Name: name, Path: path, FrameRate: rate})
	}
	if len(videos) == 0 {
		return nil, services.Wrap(
			services.ErrValidation,
			"assembly",
			"collect inputs",
			fmt.Sprintf("Directory %s contains no video files", input),
			nil,
		)
	}
	return videos, nil
}

// validateNames enforces the per-batch naming rules: every name fits the
// record width and appears once.
func validateNames(videos []Video) error {
	seen := make(map[string]struct{}, len(videos))
	for _, video := range videos {
		if len(video.Name) > identifier.MaxLength {
			return services.Wrap(
				services.ErrValidation,
				"assembly",
				"validate names",
				fmt.Sprintf("Name %s is too long. Max %d characters! Rename the video, use --video-name for a single video, or pass --short-names.", video.Name, identifier.MaxLength),
				nil,
			)
		}
		if _, dup := seen[video.Name]; dup {
			return services.Wrap(
				services.ErrValidation,
				"assembly",
				"validate names",
				fmt.Sprintf("Cannot have two videos with the same name: %s", video.Name),
				nil,
			)
		}
		seen[video.Name] = struct{}{}
	}
	return nil
}

// maxFrameSize caps the per-frame cell edge; larger atlases waste VRAM for
// no visible gain on the in-game surfaces.
const maxFrameSize = 1024

// validateFrameSize enforces the power-of-two and upper-bound rules on the
// frame cell size.
func validateFrameSize(size int) error {
	if size <= 0 || size&(size-1) != 0 {
		return services.Wrap(
			services.ErrValidation,
			"assembly",
			"validate frame size",
			fmt.Sprintf("%d is not a power of 2 (e.g. 128, 256, 512)", size),
			nil,
		)
	}
	if size > maxFrameSize {
		return services.Wrap(
			services.ErrValidation,
			"assembly",
			"validate frame size",
			fmt.Sprintf("It is not recommended to have a frame size over %d", maxFrameSize),
			nil,
		)
	}
	return nil
}
