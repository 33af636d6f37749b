package model

// TaskStatus represents the status of a pipeline task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the task is in the process of starting
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means the network download is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusRenaming means the downloaded file is being renamed to its
	// sanitized name
	TaskStatusRenaming TaskStatus = "Renaming"

	// TaskStatusConvertingVideo means the video container transcode is running
	TaskStatusConvertingVideo TaskStatus = "Converting video"

	// TaskStatusExtractingAudio means the audio track is being extracted
	TaskStatusExtractingAudio TaskStatus = "Extracting audio"

	// TaskStatusConvertingAudio means the audio transcode is running
	TaskStatusConvertingAudio TaskStatus = "Converting audio"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	switch ts {
	case TaskStatusStarting, TaskStatusDownloading, TaskStatusRenaming,
		TaskStatusConvertingVideo, TaskStatusExtractingAudio, TaskStatusConvertingAudio:
		return true
	}
	return false
}

// IsFinished returns true if the task is in a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
