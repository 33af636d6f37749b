package model

import (
	"strings"
	"time"
)

// PipelineTask represents one job executing in the worker pool. It is the
// mutable execution context the UI observes through update callbacks; it is
// owned by exactly one worker and never shared across concurrent jobs.
type PipelineTask struct {
	ID         string
	Job        Job
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    float64 // 0 to 100, as reported by the engine
	Title      string  // raw video title from the engine
	SafeTitle  string  // sanitized title used for artifact names
	VideoPath  string  // final video artifact, set on completion
	AudioPath  string  // final audio artifact, set on completion if requested
	Message    string  // terminal message (success or failure)
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayTitle returns the title, the output filename, or the URL in
// order of preference.
func (pt *PipelineTask) GetDisplayTitle() string {
	if pt.SafeTitle != "" {
		return pt.SafeTitle
	}
	if pt.Title != "" && !strings.HasPrefix(pt.Title, "http") {
		return pt.Title
	}

	if pt.VideoPath != "" {
		parts := strings.FieldsFunc(pt.VideoPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return pt.Job.URL
}
