package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/vidgrab/vidgrab/internal/artifact"
	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/transcode"
)

// Output template handed to the engine; the engine substitutes the remote
// title and detected extension.
const outputTemplate = "%(title)s.%(ext)s"

// Pipeline executes one Job from download through cleanup and produces
// exactly one Outcome. A Pipeline is single-use and fully sequential;
// every step blocks the calling goroutine.
type Pipeline struct {
	fs        afero.Fs
	engine    Engine
	converter transcode.Converter
	extractor transcode.Extractor
	job       model.Job
	tracker   *artifact.Tracker

	onProgress func(float64)
	onStatus   func(model.TaskStatus)

	safeTitle string
	videoPath string
	audioPath string
}

// NewPipeline builds a pipeline for one job. Both callbacks are optional
// and are invoked synchronously from the pipeline's goroutine.
func NewPipeline(fs afero.Fs, engine Engine, converter transcode.Converter, extractor transcode.Extractor, job model.Job, onProgress func(float64), onStatus func(model.TaskStatus)) *Pipeline {
	return &Pipeline{
		fs:         fs,
		engine:     engine,
		converter:  converter,
		extractor:  extractor,
		job:        job,
		tracker:    artifact.NewTracker(fs),
		onProgress: onProgress,
		onStatus:   onStatus,
	}
}

// Run drives the state machine to its terminal state. Failures are caught
// here and converted into a Failed outcome; after a failure every
// registered intermediate that is not a final artifact is best-effort
// deleted.
func (p *Pipeline) Run(ctx context.Context) model.Outcome {
	message, err := p.execute(ctx)
	if err != nil {
		p.tracker.Sweep()
		return failureOutcome(err)
	}
	return model.Success(message)
}

// SafeTitle returns the sanitized title, available once the download step
// finished.
func (p *Pipeline) SafeTitle() string {
	return p.safeTitle
}

// Artifacts returns the final video and audio paths produced by the run.
// The audio path is empty unless the job requested a split audio track.
func (p *Pipeline) Artifacts() (video, audio string) {
	return p.videoPath, p.audioPath
}

func (p *Pipeline) execute(ctx context.Context) (string, error) {
	// Download
	p.setStatus(model.TaskStatusDownloading)
	template := filepath.Join(p.job.DestinationDir, outputTemplate)
	meta, err := p.engine.Download(ctx, p.job.URL, template, p.handleProgress)
	if err != nil {
		return "", err
	}

	// Rename to the sanitized title
	p.setStatus(model.TaskStatusRenaming)
	set := artifact.Resolve(p.job.DestinationDir, meta.Title, sourceExtension(meta), p.job.VideoFormat)
	p.safeTitle = set.SafeTitle
	p.tracker.Register(meta.Path)
	if meta.Path != "" && meta.Path != set.SanitizedVideo {
		// An earlier run may have left a file at the sanitized path;
		// overwrite semantics are remove-then-rename.
		if err := p.tracker.Remove(set.SanitizedVideo); err != nil {
			return "", fmt.Errorf("failed to clear existing file %s: %w", set.SanitizedVideo, err)
		}
		if err := p.fs.Rename(meta.Path, set.SanitizedVideo); err != nil {
			return "", fmt.Errorf("failed to rename %s: %w", meta.Path, err)
		}
	}
	p.tracker.Register(set.SanitizedVideo)

	// Video container conversion, skipped for the no-op MP4 target
	p.videoPath = set.SanitizedVideo
	if p.job.VideoFormat == model.VideoFormatAVIDivX {
		p.setStatus(model.TaskStatusConvertingVideo)
		if err := p.converter.ToAviDivx(ctx, set.SanitizedVideo, set.FinalVideo); err != nil {
			return "", err
		}
		p.tracker.Register(set.FinalVideo)
		if set.SanitizedVideo != set.FinalVideo {
			if err := p.tracker.Remove(set.SanitizedVideo); err != nil {
				return "", fmt.Errorf("failed to remove pre-conversion video: %w", err)
			}
		}
		p.videoPath = set.FinalVideo
	}
	p.tracker.MarkFinal(p.videoPath)

	// Audio split
	if p.job.SplitAudio {
		p.setStatus(model.TaskStatusExtractingAudio)
		wavPath, err := p.extractor.ExtractWAV(ctx, p.videoPath)
		if err != nil {
			return "", err
		}
		p.tracker.Register(wavPath)

		if p.job.AudioFormat == model.AudioFormatMP3 {
			p.setStatus(model.TaskStatusConvertingAudio)
			if err := p.converter.ToMP3(ctx, wavPath, set.FinalMP3); err != nil {
				return "", err
			}
			p.tracker.Register(set.FinalMP3)
			p.tracker.MarkFinal(set.FinalMP3)
			if err := p.tracker.Remove(wavPath); err != nil {
				return "", fmt.Errorf("failed to remove intermediate WAV: %w", err)
			}
			p.audioPath = set.FinalMP3
		} else {
			// The WAV itself is the requested final artifact
			p.tracker.MarkFinal(wavPath)
			p.audioPath = wavPath
		}
	}

	return p.successMessage(), nil
}

// handleProgress forwards only records in the downloading state,
// normalized to [0,100]. Stale or out-of-order percentages pass through
// untouched; the UI tolerates them.
func (p *Pipeline) handleProgress(rec ProgressRecord) {
	if rec.Status != StatusDownloading {
		return
	}
	if p.onProgress != nil {
		p.onProgress(NormalizePercent(rec.PercentString))
	}
}

func (p *Pipeline) setStatus(status model.TaskStatus) {
	if p.onStatus != nil {
		p.onStatus(status)
	}
}

// successMessage names the safe title and the produced format(s).
func (p *Pipeline) successMessage() string {
	if p.job.SplitAudio {
		audioFormat := p.job.AudioFormat
		if audioFormat != model.AudioFormatMP3 {
			audioFormat = model.AudioFormatWAV
		}
		return fmt.Sprintf("Created %q in %s and %s formats", p.safeTitle, p.job.VideoFormat, audioFormat)
	}
	return fmt.Sprintf("Downloaded %q in %s format\nFolder: %s", p.safeTitle, p.job.VideoFormat, p.job.DestinationDir)
}

// sourceExtension prefers the extension of the materialized file over the
// metadata field, matching what the engine actually wrote to disk.
func sourceExtension(meta *Metadata) string {
	if ext := filepath.Ext(meta.Path); ext != "" {
		return ext
	}
	return meta.Ext
}

// failureOutcome maps a pipeline error onto the failure taxonomy with a
// human-readable message embedding the underlying cause.
func failureOutcome(err error) model.Outcome {
	var downloadErr *Error
	if errors.As(err, &downloadErr) {
		return model.Failed(model.FailureDownload, fmt.Sprintf("Failed to download video: %v", downloadErr.Err))
	}

	var processErr *transcode.ProcessError
	if errors.As(err, &processErr) {
		return model.Failed(model.FailureTranscode, fmt.Sprintf("Conversion failed: %v", processErr))
	}

	var extractionErr *transcode.ExtractionError
	if errors.As(err, &extractionErr) {
		return model.Failed(model.FailureAudioExtraction, fmt.Sprintf("Audio extraction failed: %v", extractionErr))
	}

	return model.Failed(model.FailureUnexpected, fmt.Sprintf("Unexpected error: %v", err))
}
