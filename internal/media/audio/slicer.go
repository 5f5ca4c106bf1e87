package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Slicer extracts audio segments via ffmpeg.
type Slicer struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewSlicer creates a Slicer using the given ffmpeg binary.
func NewSlicer(ffmpegBinary string) *Slicer {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Slicer{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Slicer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// ExtractSegment cuts [startMillis, startMillis+durationMillis) out of source
// into dest as mono MP3, which keeps chunk uploads small without losing
// speech intelligibility.
func (s *Slicer) ExtractSegment(ctx context.Context, source string, startMillis, durationMillis int64, dest string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("extract segment: source path required")
	}
	if durationMillis <= 0 {
		return fmt.Errorf("extract segment: invalid duration %dms", durationMillis)
	}
	if startMillis < 0 {
		return fmt.Errorf("extract segment: invalid start %dms", startMillis)
	}

	args := buildExtractArgs(source, startMillis, durationMillis, dest)
	return s.run(ctx, s.ffmpegBinary, args...)
}

func buildExtractArgs(source string, startMillis, durationMillis int64, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatSeconds(startMillis),
		"-t", formatSeconds(durationMillis),
		"-i", source,
		"-vn",
		"-ac", "1",
		"-c:a", "libmp3lame",
		"-q:a", "4",
		dest,
	}
}

func formatSeconds(millis int64) string {
	return fmt.Sprintf("%d.%03d", millis/1000, millis%1000)
}

func (s *Slicer) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
