package download

// Package download implements the core download-convert-cleanup pipeline
// built on top of yt-dlp (via github.com/lrstanley/go-ytdlp). It manages
// job lifecycle, concurrency limits, progress propagation to the UI, and
// the conversion steps that follow a finished download.
