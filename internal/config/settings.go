package config

import (
	"fyne.io/fyne/v2"

	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyDefaultVideoFormat = "default_video_format"
	KeyDefaultAudioFormat = "default_audio_format"
	KeySplitAudio         = "split_audio"
)

// Default values
const (
	DefaultMaxParallel = 2
	DefaultSplitAudio  = false

	FallbackDownloadDir = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel jobs
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel jobs
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetDefaultVideoFormat returns the video format preselected in the UI
func (s *Settings) GetDefaultVideoFormat() model.VideoFormat {
	value := s.app.Preferences().String(KeyDefaultVideoFormat)
	if value == "" {
		defaultFormat := model.VideoFormatOptions()[0]
		s.SetDefaultVideoFormat(defaultFormat)
		return defaultFormat
	}
	return model.VideoFormat(value)
}

// SetDefaultVideoFormat sets the video format preselected in the UI
func (s *Settings) SetDefaultVideoFormat(format model.VideoFormat) {
	s.app.Preferences().SetString(KeyDefaultVideoFormat, string(format))
}

// GetDefaultAudioFormat returns the audio format preselected in the UI
func (s *Settings) GetDefaultAudioFormat() model.AudioFormat {
	value := s.app.Preferences().String(KeyDefaultAudioFormat)
	if value == "" {
		defaultFormat := model.AudioFormatOptions()[0]
		s.SetDefaultAudioFormat(defaultFormat)
		return defaultFormat
	}
	return model.AudioFormat(value)
}

// SetDefaultAudioFormat sets the audio format preselected in the UI
func (s *Settings) SetDefaultAudioFormat(format model.AudioFormat) {
	s.app.Preferences().SetString(KeyDefaultAudioFormat, string(format))
}

// GetSplitAudio returns whether split-audio starts checked
func (s *Settings) GetSplitAudio() bool {
	return s.app.Preferences().BoolWithFallback(KeySplitAudio, DefaultSplitAudio)
}

// SetSplitAudio stores the last split-audio choice
func (s *Settings) SetSplitAudio(split bool) {
	s.app.Preferences().SetBool(KeySplitAudio, split)
}
