package main

import (
	"fmt"
	"io"
	"strconv"

	"autovideo/internal/assembly"
)

// printBatchSummary renders the per-video table and the plugin or script
// artifacts the batch produced.
func printBatchSummary(out io.Writer, result *assembly.BatchResult) {
	if result == nil {
		return
	}

	noun := "videos"
	if len(result.Videos) == 1 {
		noun = "video"
	}
	mode := "plugin records"
	if result.Script {
		mode = "an xEdit script"
	}
	fmt.Fprintf(out, "Converted %d %s for %s (%s) with %s\n", len(result.Videos), noun, result.ModName, result.ModToken, mode)

	rows := make([][]string, 0, len(result.Videos))
	for _, video := range result.Videos {
		rows = append(rows, []string{
			video.Name,
			video.Token,
			strconv.Itoa(video.GridCount),
			strconv.Itoa(video.FrameCount),
			yesNo(video.HasAudio),
			yesNo(video.Compact),
			yesNo(video.Truncated),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Video", "Token", "Grids", "Frames", "Audio", "Drive-In", "Cut"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
	))

	for _, artifact := range result.Artifacts {
		fmt.Fprintf(out, "Wrote %s\n", artifact)
	}
}
