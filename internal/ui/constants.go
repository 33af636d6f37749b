package ui

// Window and form labels
const (
	LabelURL         = "Video URL"
	LabelFolder      = "Save to folder"
	LabelVideoFormat = "Video format"
	LabelAudioFormat = "Audio format"
	LabelSplitAudio  = "Also extract audio track"
	LabelSubmit      = "Download"

	PlaceholderURL = "https://www.youtube.com/watch?v=..."

	TitleCompleted = "Download complete"
	TitleFailed    = "Download failed"

	UpdateNotificationTitle = "yt-dlp update available"
	UpdateNotificationBody  = "A newer yt-dlp release exists. The upgrade command was copied to your clipboard."
)
