package model

import "testing"

func TestTaskStatusIsActive(t *testing.T) {
	active := []TaskStatus{
		TaskStatusStarting,
		TaskStatusDownloading,
		TaskStatusRenaming,
		TaskStatusConvertingVideo,
		TaskStatusExtractingAudio,
		TaskStatusConvertingAudio,
	}
	for _, status := range active {
		if !status.IsActive() {
			t.Errorf("Expected %s to be active", status)
		}
	}

	inactive := []TaskStatus{TaskStatusPending, TaskStatusCompleted, TaskStatusError}
	for _, status := range inactive {
		if status.IsActive() {
			t.Errorf("Expected %s to not be active", status)
		}
	}
}

func TestTaskStatusIsFinished(t *testing.T) {
	finished := []TaskStatus{TaskStatusCompleted, TaskStatusError}
	for _, status := range finished {
		if !status.IsFinished() {
			t.Errorf("Expected %s to be finished", status)
		}
	}

	unfinished := []TaskStatus{
		TaskStatusPending,
		TaskStatusStarting,
		TaskStatusDownloading,
		TaskStatusRenaming,
		TaskStatusConvertingVideo,
		TaskStatusExtractingAudio,
		TaskStatusConvertingAudio,
	}
	for _, status := range unfinished {
		if status.IsFinished() {
			t.Errorf("Expected %s to not be finished", status)
		}
	}
}

func TestOutcome(t *testing.T) {
	ok := Success("done")
	if !ok.Succeeded || ok.Message != "done" || ok.Failure != "" {
		t.Errorf("Unexpected success outcome: %+v", ok)
	}

	failed := Failed(FailureDownload, "network gone")
	if failed.Succeeded {
		t.Error("Expected failure outcome to not be succeeded")
	}
	if failed.Failure != FailureDownload {
		t.Errorf("Expected failure kind %s, got %s", FailureDownload, failed.Failure)
	}
}
