package download

import (
	"context"

	"github.com/vidgrab/vidgrab/internal/model"
)

// Engine progress statuses. Only records in StatusDownloading carry a
// percentage worth forwarding.
const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
)

// ProgressRecord is one raw progress callback from the engine. The percent
// string arrives as the engine formats it, possibly with ANSI escapes and
// a trailing percent sign; it may also go backwards between records.
type ProgressRecord struct {
	Status        string
	PercentString string
}

// Metadata is what the engine reports once a download completed.
type Metadata struct {
	Title string // raw remote title, not yet sanitized
	Ext   string // detected extension without dot, e.g. "mp4"
	Path  string // where the engine materialized the file
}

// Engine abstracts the network extraction capability: given a URL and an
// output-path template it downloads the media, invoking progress along the
// way, and returns the final metadata or a download error.
type Engine interface {
	Download(ctx context.Context, url, outputTemplate string, progress func(ProgressRecord)) (*Metadata, error)
}

// Runner is the caller-facing surface of the download service.
type Runner interface {
	SetUpdateCallback(func(*model.PipelineTask))
	Submit(job model.Job) (*model.PipelineTask, error)
	GetTask(id string) (*model.PipelineTask, bool)
	GetAllTasks() []*model.PipelineTask
}
