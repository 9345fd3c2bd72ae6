package encoder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"autovideo/internal/fileutil"
	"autovideo/internal/logging"
	"autovideo/internal/services"
	"autovideo/internal/timing"
)

// frameArgs assembles the ffmpeg argument list that explodes the source
// into numbered PNG frames, capped at the mesh frame capacity.
func frameArgs(source, pattern string, plan framePlan) []string {
	return ffmpeg.Input(source).
		Output(pattern, ffmpeg.KwArgs{
			"vf":       plan.Filter,
			"frames:v": timing.MaxFrames,
		}).
		OverWriteOutput().
		GetArgs()
}

// audioArgs assembles the ffmpeg argument list that extracts the audio
// track as 16-bit PCM. The wav muxer selects the audio stream on its
// own, so no explicit stream mapping is needed.
func audioArgs(source, wavPath string) []string {
	return ffmpeg.Input(source).
		Output(wavPath, ffmpeg.KwArgs{
			"acodec": "pcm_s16le",
			"ar":     44100,
		}).
		OverWriteOutput().
		GetArgs()
}

// runFFmpeg executes a prepared argument list and wraps failures with
// the tail of the tool output.
func (e *Encoder) runFFmpeg(ctx context.Context, args []string, operation, message string) error {
	cmd := exec.CommandContext(ctx, e.ffmpegBinary(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return services.Wrap(
			services.ErrExternalTool,
			"encoder",
			operation,
			message,
			errors.Wrap(err, outputTail(output)),
		)
	}
	return nil
}

// extractAudio writes the source's audio track into the output sound
// tree. FFmpeg writes into staging first so a failed extraction cannot
// leave a partial wav in the output directory.
func (e *Encoder) extractAudio(ctx context.Context, req Request) (string, error) {
	staged := filepath.Join(req.StagingDir, req.AudioName+".wav")
	logging.WithContext(ctx, e.logger).Info("extracting audio", logging.String("source", req.Source))
	if err := e.runFFmpeg(ctx, audioArgs(req.Source, staged), "extract audio",
		"FFmpeg audio extraction failed"); err != nil {
		return "", err
	}
	target := audioPath(req.OutputDir, req.AudioName)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", services.Wrap(
			services.ErrTransient,
			"encoder",
			"write audio",
			"Failed to create the sound output directory",
			err,
		)
	}
	if err := fileutil.CopyFile(staged, target); err != nil {
		return "", services.Wrap(
			services.ErrTransient,
			"encoder",
			"write audio",
			fmt.Sprintf("Failed to write %s", target),
			err,
		)
	}
	return target, nil
}

// outputTail returns the last non-empty line of tool output for error
// context.
func outputTail(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no tool output"
}
