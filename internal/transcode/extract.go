package transcode

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/vidgrab/vidgrab/internal/platform"
)

// WAV extraction settings
const (
	WAVExtension  = ".wav"
	WAVAudioCodec = "pcm_s16le"
)

// ExtractWAV decodes the audio track of videoPath into a WAV with the same
// (sanitized) base name in the same folder. The decoding is considered
// successful only if the WAV exists afterwards; the process exit code is
// kept as detail when it does not.
func (s *Service) ExtractWAV(ctx context.Context, videoPath string) (string, error) {
	wavPath := wavPathFor(videoPath)

	runErr := s.run(ctx, wavPath, buildWAVArgs(videoPath, wavPath))

	exists, err := afero.Exists(s.fs, wavPath)
	if err != nil || !exists {
		if runErr == nil {
			runErr = err
		}
		return "", &ExtractionError{Path: wavPath, Err: runErr}
	}
	return wavPath, nil
}

// wavPathFor derives the WAV path beside the video, sanitizing only the
// leaf base name.
func wavPathFor(videoPath string) string {
	dir := filepath.Dir(videoPath)
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(dir, platform.SanitizeFilename(base)+WAVExtension)
}

// buildWAVArgs builds the ffmpeg arguments for lossless audio extraction
func buildWAVArgs(input, output string) []string {
	return []string{
		"-i", input,
		"-vn",
		"-acodec", WAVAudioCodec,
		output,
	}
}
