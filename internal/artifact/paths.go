package artifact

import (
	"path/filepath"
	"strings"

	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/platform"
)

// Artifact extensions
const (
	ExtensionWAV = ".wav"
	ExtensionMP3 = ".mp3"
)

// Set holds every deterministic output path for one run, derived from the
// destination folder, the raw remote title, and the detected source
// extension. Only the leaf file name is sanitized; the folder path is
// taken verbatim from the job.
type Set struct {
	Dir       string
	SafeTitle string
	SourceExt string // with leading dot, e.g. ".mp4"

	// SanitizedVideo is the download renamed to its safe title, still in
	// the source container.
	SanitizedVideo string

	// FinalVideo is the video artifact after the (possibly no-op)
	// container conversion.
	FinalVideo string

	// IntermediateWAV is the lossless track pulled out of the final video.
	// When the job requests WAV it doubles as the final audio artifact.
	IntermediateWAV string

	// FinalMP3 is the audio artifact when the job requests MP3.
	FinalMP3 string
}

// Resolve computes the full artifact set for a run.
func Resolve(dir, rawTitle, sourceExt string, videoFormat model.VideoFormat) Set {
	if sourceExt != "" && !strings.HasPrefix(sourceExt, ".") {
		sourceExt = "." + sourceExt
	}
	safeTitle := platform.SanitizeFilename(rawTitle)

	return Set{
		Dir:             dir,
		SafeTitle:       safeTitle,
		SourceExt:       sourceExt,
		SanitizedVideo:  filepath.Join(dir, safeTitle+sourceExt),
		FinalVideo:      filepath.Join(dir, safeTitle+"."+videoFormat.TargetExtension(sourceExt)),
		IntermediateWAV: filepath.Join(dir, safeTitle+ExtensionWAV),
		FinalMP3:        filepath.Join(dir, safeTitle+ExtensionMP3),
	}
}
