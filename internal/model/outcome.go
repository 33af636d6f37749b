package model

// FailureKind classifies terminal pipeline failures.
type FailureKind string

const (
	FailureDownload        FailureKind = "download"
	FailureTranscode       FailureKind = "transcode"
	FailureAudioExtraction FailureKind = "audio-extraction"
	FailureUnexpected      FailureKind = "unexpected"
)

// Outcome is the single terminal event of a pipeline run: either a success
// with a human-readable message, or a classified failure. Exactly one
// Outcome is produced per run.
type Outcome struct {
	Succeeded bool
	Failure   FailureKind // set only when Succeeded is false
	Message   string
}

// Success builds a successful outcome.
func Success(message string) Outcome {
	return Outcome{Succeeded: true, Message: message}
}

// Failed builds a failure outcome of the given kind.
func Failed(kind FailureKind, message string) Outcome {
	return Outcome{Succeeded: false, Failure: kind, Message: message}
}
