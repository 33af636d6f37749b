package platform

// Package platform contains OS/platform integration and external tooling
// glue: filename sanitization, filesystem helpers, and the yt-dlp
// self-update probe.
