package download

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/transcode"
)

// fakeEngine materializes a file the way yt-dlp would: raw title plus
// detected extension under the template's directory.
type fakeEngine struct {
	fs      afero.Fs
	title   string
	ext     string
	records []ProgressRecord
	err     error
}

func (e *fakeEngine) Download(ctx context.Context, url, template string, progress func(ProgressRecord)) (*Metadata, error) {
	for _, rec := range e.records {
		if progress != nil {
			progress(rec)
		}
	}
	if e.err != nil {
		return nil, &Error{URL: url, Err: e.err}
	}

	path := filepath.Join(filepath.Dir(template), e.title+"."+e.ext)
	if err := afero.WriteFile(e.fs, path, []byte("video-bytes"), 0644); err != nil {
		return nil, err
	}
	return &Metadata{Title: e.title, Ext: e.ext, Path: path}, nil
}

// fakeConverter mimics the ffmpeg invoker: clears the output, then writes
// it, or fails without producing anything.
type fakeConverter struct {
	fs     afero.Fs
	aviErr error
	mp3Err error
}

func (c *fakeConverter) ToAviDivx(ctx context.Context, input, output string) error {
	if c.aviErr != nil {
		return c.aviErr
	}
	return afero.WriteFile(c.fs, output, []byte("avi-bytes"), 0644)
}

func (c *fakeConverter) ToMP3(ctx context.Context, input, output string) error {
	if c.mp3Err != nil {
		return c.mp3Err
	}
	return afero.WriteFile(c.fs, output, []byte("mp3-bytes"), 0644)
}

// fakeExtractor writes a WAV beside the video.
type fakeExtractor struct {
	fs  afero.Fs
	err error
}

func (e *fakeExtractor) ExtractWAV(ctx context.Context, videoPath string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	wavPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"
	if err := afero.WriteFile(e.fs, wavPath, []byte("wav-bytes"), 0644); err != nil {
		return "", err
	}
	return wavPath, nil
}

func listFiles(t *testing.T, fs afero.Fs, dir string) map[string]bool {
	t.Helper()
	files := make(map[string]bool)
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		t.Fatalf("Failed to read dir %s: %v", dir, err)
	}
	for _, info := range infos {
		files[info.Name()] = true
	}
	return files
}

func newTestPipeline(fs afero.Fs, engine Engine, job model.Job, onProgress func(float64)) *Pipeline {
	return NewPipeline(fs, engine, &fakeConverter{fs: fs}, &fakeExtractor{fs: fs}, job, onProgress, nil)
}

func TestPipelineMP4NoSplit(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{fs: fs, title: `My: Video?`, ext: "mp4"}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=a",
		DestinationDir: "/downloads",
		VideoFormat:    model.VideoFormatMP4,
	}

	pipeline := newTestPipeline(fs, engine, job, nil)
	outcome := pipeline.Run(context.Background())

	if !outcome.Succeeded {
		t.Fatalf("Expected success, got %+v", outcome)
	}
	if pipeline.SafeTitle() != "My_ Video_" {
		t.Errorf("Unexpected safe title: %s", pipeline.SafeTitle())
	}

	video, audio := pipeline.Artifacts()
	if video != "/downloads/My_ Video_.mp4" {
		t.Errorf("Unexpected video artifact: %s", video)
	}
	if audio != "" {
		t.Errorf("Expected no audio artifact, got %s", audio)
	}

	// Final artifact set is exactly the sanitized video; the raw download
	// was renamed away.
	files := listFiles(t, fs, "/downloads")
	if len(files) != 1 || !files["My_ Video_.mp4"] {
		t.Errorf("Unexpected final artifact set: %v", files)
	}
}

func TestPipelineAviDivxWithMP3(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{fs: fs, title: "Concert", ext: "mp4"}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=b",
		DestinationDir: "/downloads",
		SplitAudio:     true,
		VideoFormat:    model.VideoFormatAVIDivX,
		AudioFormat:    model.AudioFormatMP3,
	}

	pipeline := newTestPipeline(fs, engine, job, nil)
	outcome := pipeline.Run(context.Background())

	if !outcome.Succeeded {
		t.Fatalf("Expected success, got %+v", outcome)
	}

	// Exactly the AVI and the MP3 remain: the pre-conversion container and
	// the intermediate WAV were both consumed.
	files := listFiles(t, fs, "/downloads")
	if len(files) != 2 || !files["Concert.avi"] || !files["Concert.mp3"] {
		t.Errorf("Unexpected final artifact set: %v", files)
	}

	if !strings.Contains(outcome.Message, "Concert") {
		t.Errorf("Expected message to name the title, got %q", outcome.Message)
	}
	if !strings.Contains(outcome.Message, "MP3") {
		t.Errorf("Expected message to name the audio format, got %q", outcome.Message)
	}
}

func TestPipelineWAVIsKept(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{fs: fs, title: "Lecture", ext: "mp4"}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=c",
		DestinationDir: "/downloads",
		SplitAudio:     true,
		VideoFormat:    model.VideoFormatMP4,
		AudioFormat:    model.AudioFormatWAV,
	}

	pipeline := newTestPipeline(fs, engine, job, nil)
	outcome := pipeline.Run(context.Background())

	if !outcome.Succeeded {
		t.Fatalf("Expected success, got %+v", outcome)
	}

	exists, _ := afero.Exists(fs, "/downloads/Lecture.wav")
	if !exists {
		t.Error("Expected WAV to remain as the final audio artifact")
	}

	_, audio := pipeline.Artifacts()
	if audio != "/downloads/Lecture.wav" {
		t.Errorf("Unexpected audio artifact: %s", audio)
	}
}

func TestPipelineDownloadFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{fs: fs, err: errors.New("video unavailable")}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=gone",
		DestinationDir: "/downloads",
		VideoFormat:    model.VideoFormatMP4,
	}

	pipeline := newTestPipeline(fs, engine, job, nil)
	outcome := pipeline.Run(context.Background())

	if outcome.Succeeded {
		t.Fatal("Expected failure outcome")
	}
	if outcome.Failure != model.FailureDownload {
		t.Errorf("Expected download failure kind, got %s", outcome.Failure)
	}
	if !strings.Contains(outcome.Message, "Failed to download") {
		t.Errorf("Expected download failure message, got %q", outcome.Message)
	}
	if !strings.Contains(outcome.Message, "video unavailable") {
		t.Errorf("Expected underlying cause in message, got %q", outcome.Message)
	}
}

func TestPipelineTranscodeFailureSweepsIntermediates(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{fs: fs, title: "Doomed", ext: "mp4"}
	converter := &fakeConverter{fs: fs, aviErr: &transcode.ProcessError{ExitCode: 1, Stderr: "bad stream"}}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=d",
		DestinationDir: "/downloads",
		VideoFormat:    model.VideoFormatAVIDivX,
	}

	pipeline := NewPipeline(fs, engine, converter, &fakeExtractor{fs: fs}, job, nil, nil)
	outcome := pipeline.Run(context.Background())

	if outcome.Succeeded {
		t.Fatal("Expected failure outcome")
	}
	if outcome.Failure != model.FailureTranscode {
		t.Errorf("Expected transcode failure kind, got %s", outcome.Failure)
	}
	if !strings.Contains(outcome.Message, "bad stream") {
		t.Errorf("Expected stderr detail in message, got %q", outcome.Message)
	}

	// The downloaded container was swept; no orphans remain.
	files := listFiles(t, fs, "/downloads")
	if len(files) != 0 {
		t.Errorf("Expected empty folder after sweep, got %v", files)
	}
}

func TestPipelineExtractionFailureKeepsFinalVideo(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{fs: fs, title: "Silent", ext: "mp4"}
	extractor := &fakeExtractor{fs: fs, err: &transcode.ExtractionError{Path: "/downloads/Silent.wav"}}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=e",
		DestinationDir: "/downloads",
		SplitAudio:     true,
		VideoFormat:    model.VideoFormatMP4,
		AudioFormat:    model.AudioFormatMP3,
	}

	pipeline := NewPipeline(fs, engine, &fakeConverter{fs: fs}, extractor, job, nil, nil)
	outcome := pipeline.Run(context.Background())

	if outcome.Succeeded {
		t.Fatal("Expected failure outcome")
	}
	if outcome.Failure != model.FailureAudioExtraction {
		t.Errorf("Expected audio-extraction failure kind, got %s", outcome.Failure)
	}

	// The video had already become a final artifact; sweep must keep it.
	exists, _ := afero.Exists(fs, "/downloads/Silent.mp4")
	if !exists {
		t.Error("Expected final video to survive the failure sweep")
	}
}

func TestPipelineOverwritesExistingOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/downloads/Rerun.mp4", []byte("old-bytes"), 0644); err != nil {
		t.Fatalf("Failed to seed existing file: %v", err)
	}

	engine := &fakeEngine{fs: fs, title: "Rerun?", ext: "mp4"}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=f",
		DestinationDir: "/downloads",
		VideoFormat:    model.VideoFormatMP4,
	}

	// "Rerun?" sanitizes to "Rerun_", so seed that collision too.
	if err := afero.WriteFile(fs, "/downloads/Rerun_.mp4", []byte("old-bytes"), 0644); err != nil {
		t.Fatalf("Failed to seed existing file: %v", err)
	}

	pipeline := newTestPipeline(fs, engine, job, nil)
	outcome := pipeline.Run(context.Background())

	if !outcome.Succeeded {
		t.Fatalf("Expected success over existing file, got %+v", outcome)
	}

	content, err := afero.ReadFile(fs, "/downloads/Rerun_.mp4")
	if err != nil {
		t.Fatalf("Failed to read final artifact: %v", err)
	}
	if string(content) != "video-bytes" {
		t.Errorf("Expected new content, got %q", string(content))
	}
}

func TestPipelineForwardsOnlyDownloadingProgress(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{
		fs:    fs,
		title: "Clip",
		ext:   "mp4",
		records: []ProgressRecord{
			{Status: StatusDownloading, PercentString: "10.5%"},
			{Status: StatusDownloading, PercentString: "7.0%\x1b[0m"}, // out of order, still forwarded
			{Status: StatusFinished, PercentString: "100%"},
			{Status: StatusDownloading, PercentString: "--"},
		},
	}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=g",
		DestinationDir: "/downloads",
		VideoFormat:    model.VideoFormatMP4,
	}

	var got []float64
	pipeline := newTestPipeline(fs, engine, job, func(percent float64) {
		got = append(got, percent)
	})
	if outcome := pipeline.Run(context.Background()); !outcome.Succeeded {
		t.Fatalf("Expected success, got %+v", outcome)
	}

	expected := []float64{10.5, 7.0, 0.0}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d progress events, got %d: %v", len(expected), len(got), got)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("Progress event %d: expected %v, got %v", i, want, got[i])
		}
	}
}

func TestPipelineStatusSequence(t *testing.T) {
	fs := afero.NewMemMapFs()
	engine := &fakeEngine{fs: fs, title: "Full Run", ext: "mp4"}
	job := model.Job{
		URL:            "https://youtube.com/watch?v=h",
		DestinationDir: "/downloads",
		SplitAudio:     true,
		VideoFormat:    model.VideoFormatAVIDivX,
		AudioFormat:    model.AudioFormatMP3,
	}

	var statuses []model.TaskStatus
	pipeline := NewPipeline(fs, engine, &fakeConverter{fs: fs}, &fakeExtractor{fs: fs}, job, nil,
		func(status model.TaskStatus) {
			statuses = append(statuses, status)
		})
	if outcome := pipeline.Run(context.Background()); !outcome.Succeeded {
		t.Fatalf("Expected success, got %+v", outcome)
	}

	expected := []model.TaskStatus{
		model.TaskStatusDownloading,
		model.TaskStatusRenaming,
		model.TaskStatusConvertingVideo,
		model.TaskStatusExtractingAudio,
		model.TaskStatusConvertingAudio,
	}
	if len(statuses) != len(expected) {
		t.Fatalf("Expected %d statuses, got %v", len(expected), statuses)
	}
	for i, want := range expected {
		if statuses[i] != want {
			t.Errorf("Status %d: expected %s, got %s", i, want, statuses[i])
		}
	}
}
