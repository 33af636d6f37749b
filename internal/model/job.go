package model

import (
	"errors"
	"fmt"
	"strings"
)

// VideoFormat selects the container of the final video artifact.
type VideoFormat string

const (
	// VideoFormatMP4 keeps the container the source was downloaded in.
	VideoFormatMP4 VideoFormat = "MP4"

	// VideoFormatAVIDivX re-encodes the video into an AVI container with
	// the DivX fourcc.
	VideoFormatAVIDivX VideoFormat = "AVI (DivX)"
)

// AudioFormat selects the format of the split-off audio track.
type AudioFormat string

const (
	AudioFormatMP3 AudioFormat = "MP3"
	AudioFormatWAV AudioFormat = "WAV"
)

// Validation errors detected before a job reaches the worker pool.
var (
	ErrEmptyURL         = errors.New("URL must not be empty")
	ErrEmptyDestination = errors.New("destination folder must not be empty")
)

// TargetExtension returns the extension of the final video file, without a
// leading dot. For MP4 the conversion is a no-op, so the source extension
// is kept as-is.
func (f VideoFormat) TargetExtension(sourceExt string) string {
	if f == VideoFormatAVIDivX {
		return "avi"
	}
	return strings.TrimPrefix(sourceExt, ".")
}

// String returns the display name of the format.
func (f VideoFormat) String() string {
	return string(f)
}

// String returns the display name of the format.
func (f AudioFormat) String() string {
	return string(f)
}

// VideoFormatOptions lists the formats offered in the UI, default first.
func VideoFormatOptions() []VideoFormat {
	return []VideoFormat{VideoFormatAVIDivX, VideoFormatMP4}
}

// AudioFormatOptions lists the formats offered in the UI, default first.
func AudioFormatOptions() []AudioFormat {
	return []AudioFormat{AudioFormatMP3, AudioFormatWAV}
}

// Job is one immutable user-submitted download request. AudioFormat is only
// meaningful when SplitAudio is set.
type Job struct {
	URL            string
	DestinationDir string
	SplitAudio     bool
	VideoFormat    VideoFormat
	AudioFormat    AudioFormat
}

// Validate rejects jobs that must never reach a worker.
func (j Job) Validate() error {
	if strings.TrimSpace(j.URL) == "" {
		return fmt.Errorf("invalid job: %w", ErrEmptyURL)
	}
	if strings.TrimSpace(j.DestinationDir) == "" {
		return fmt.Errorf("invalid job: %w", ErrEmptyDestination)
	}
	return nil
}
