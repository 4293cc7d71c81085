package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
	"go.uber.org/zap"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

// FFmpegRemuxer implements Remuxer by running ffmpeg with stream copy
type FFmpegRemuxer struct {
	binary string
	logger *zap.Logger
}

// NewFFmpegRemuxer creates a remuxer invoking binary, "ffmpeg" when empty
func NewFFmpegRemuxer(config *domain.RemuxConfig, logger *zap.Logger) *FFmpegRemuxer {
	binary := config.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegRemuxer{
		binary: binary,
		logger: logger,
	}
}

// MergeArgs returns the ffmpeg arguments combining both inputs without re-encoding
func MergeArgs(videoFile, audioFile, outputFile string) []string {
	return []string{"-i", videoFile, "-i", audioFile, "-c", "copy", outputFile}
}

// Merge runs ffmpeg and waits for it. Only the exit status decides success.
func (r *FFmpegRemuxer) Merge(ctx context.Context, videoFile, audioFile, outputFile string) error {
	args := MergeArgs(videoFile, audioFile, outputFile)

	r.logger.Debug("Running merge",
		zap.String("command", shellescape.QuoteCommand(append([]string{r.binary}, args...))))

	// Output is kept for the debug log only
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		r.logger.Debug("Merge output",
			zap.String("output_file", outputFile),
			zap.String("output", lastLines(output.String(), 20)))

		return &domain.MergeError{Output: outputFile, ExitCode: exitCode, Err: err}
	}

	return nil
}

// lastLines returns at most n trailing lines of s
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

var _ domain.Remuxer = (*FFmpegRemuxer)(nil)
