package transcode

import "context"

// Converter runs the external transcoding process for one input/output
// pair. Both operations block until the process exits and delete any
// pre-existing file at output before starting.
type Converter interface {
	ToAviDivx(ctx context.Context, input, output string) error
	ToMP3(ctx context.Context, input, output string) error
}

// Extractor decodes the audio track of a video into a WAV next to it and
// returns the WAV path. Success is judged by the output file existing
// after the call, not by the process exit code.
type Extractor interface {
	ExtractWAV(ctx context.Context, videoPath string) (string, error)
}
