package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/afero"
)

// FFmpeg constants for conversion settings
const (
	FFmpegCommand = "ffmpeg"

	// AVI (DivX) settings
	DivXVideoCodec = "mpeg4"
	DivXVideoTag   = "DIVX"
	DivXQuality    = "2"

	// MP3 settings: highest VBR quality, audio streams only
	MP3AudioQuality = "0"
	MP3AudioMap     = "a"
)

// Service invokes ffmpeg for container and audio conversions. The
// filesystem is only used to clear pre-existing outputs; ffmpeg itself
// always writes to the real filesystem.
type Service struct {
	fs afero.Fs
}

// NewService creates a new transcoding service
func NewService(fs afero.Fs) *Service {
	return &Service{fs: fs}
}

// ToAviDivx converts input into an AVI container with the DivX fourcc,
// blocking until ffmpeg exits.
func (s *Service) ToAviDivx(ctx context.Context, input, output string) error {
	return s.run(ctx, output, buildAviDivxArgs(input, output))
}

// ToMP3 converts an audio file into MP3 at the highest VBR quality,
// blocking until ffmpeg exits.
func (s *Service) ToMP3(ctx context.Context, input, output string) error {
	return s.run(ctx, output, buildMP3Args(input, output))
}

// run clears any stale file at output, then executes ffmpeg and converts a
// non-zero exit into a ProcessError carrying captured stderr.
func (s *Service) run(ctx context.Context, output string, args []string) error {
	if err := s.removeExisting(output); err != nil {
		return fmt.Errorf("failed to clear existing output %s: %w", output, err)
	}

	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ProcessError{
			ExitCode: exitCode(err),
			Stderr:   lastStderrLine(stderr.String()),
			Err:      err,
		}
	}
	return nil
}

// removeExisting deletes a pre-existing file at path. Stale partial files
// at the output path would otherwise make ffmpeg exit codes ambiguous.
func (s *Service) removeExisting(path string) error {
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.fs.Remove(path)
}

// buildAviDivxArgs builds the ffmpeg arguments for the AVI (DivX) conversion
func buildAviDivxArgs(input, output string) []string {
	return []string{
		"-i", input,
		"-c:v", DivXVideoCodec,
		"-vtag", DivXVideoTag,
		"-q:v", DivXQuality,
		output,
	}
}

// buildMP3Args builds the ffmpeg arguments for the MP3 conversion
func buildMP3Args(input, output string) []string {
	return []string{
		"-i", input,
		"-q:a", MP3AudioQuality,
		"-map", MP3AudioMap,
		output,
	}
}

// exitCode extracts the process exit code, -1 when the process never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// lastStderrLine returns the last non-empty stderr line; ffmpeg puts the
// actual failure reason there, after pages of banner output.
func lastStderrLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
