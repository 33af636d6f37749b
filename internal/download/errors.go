package download

import "fmt"

// Error wraps a failure reported by the download engine, distinguishable
// from the transcoding error types downstream steps produce.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
