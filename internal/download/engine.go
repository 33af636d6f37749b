package download

import (
	"context"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Progress callback interval for the engine
const progressInterval = 500 * time.Millisecond

// YTDLPEngine adapts github.com/lrstanley/go-ytdlp to the Engine
// interface.
type YTDLPEngine struct{}

// NewYTDLPEngine creates the production download engine.
func NewYTDLPEngine() *YTDLPEngine {
	return &YTDLPEngine{}
}

// Download runs yt-dlp for a single URL. Pre-existing outputs are
// overwritten, TLS certificates are not verified, and color output is
// disabled so percent strings stay parseable.
func (e *YTDLPEngine) Download(ctx context.Context, url, outputTemplate string, progress func(ProgressRecord)) (*Metadata, error) {
	dl := ytdlp.New().
		Format("best").
		ForceOverwrites().
		NoCheckCertificates().
		Color("never").
		Output(outputTemplate)

	if progress != nil {
		dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			progress(ProgressRecord{
				Status:        string(update.Status),
				PercentString: update.PercentString(),
			})
		})
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	meta := &Metadata{}
	if result != nil {
		if info, infoErr := result.GetExtractedInfo(); infoErr == nil {
			meta = metadataFrom(info)
		}
	}
	return meta, nil
}

// metadataFrom maps the first extracted-info entry onto Metadata. Title and
// Filename are optional pointers in the yt-dlp output; Extension is a plain
// string that is empty when undetected.
func metadataFrom(info []*ytdlp.ExtractedInfo) *Metadata {
	meta := &Metadata{}
	if len(info) == 0 || info[0] == nil {
		return meta
	}
	first := info[0]
	if first.Title != nil {
		meta.Title = *first.Title
	}
	if first.Extension != "" {
		meta.Ext = first.Extension
	}
	if first.Filename != nil {
		meta.Path = *first.Filename
	}
	return meta
}
