package deps

import (
	"context"
	"os/exec"
	"strings"
)

// Version runs command with -version and returns the first output line, or
// an empty string when the probe fails. Both ffmpeg and ffprobe print
// their build identification this way.
func Version(ctx context.Context, command string) string {
	cmd := exec.CommandContext(ctx, command, "-version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(line)
}
