package transcode

import "fmt"

// ProcessError reports a transcoding process that exited non-zero.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffmpeg exited with code %d: %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("ffmpeg failed: %v", e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that the decoding step did not produce the
// expected WAV file.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio track was not extracted to %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("audio track was not extracted to %s", e.Path)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
