package transcode

// Package transcode wraps the external ffmpeg process for the two
// conversions the app offers (AVI/DivX container, MP3 audio) and for
// pulling a lossless WAV track out of a finished video.
