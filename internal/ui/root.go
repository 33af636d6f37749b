package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/vidgrab/vidgrab/internal/config"
	"github.com/vidgrab/vidgrab/internal/download"
	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/platform"
)

// RootUI is the main window content: the job form, the progress bar and the
// submit button. One job runs at a time from the UI's point of view; the
// button stays disabled until the active task reaches a terminal status.
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	runner   download.Runner
	settings *config.Settings

	urlEntry          *widget.Entry
	folderEntry       *widget.Entry
	videoFormatSelect *widget.Select
	splitAudioCheck   *widget.Check
	audioFormatSelect *widget.Select
	audioFormatRow    *fyne.Container
	progressBar       *widget.ProgressBar
	statusLabel       *widget.Label
	submitButton      *widget.Button

	activeTaskID string
}

// NewRootUI creates the main UI, wires it to the download service and sets
// it as the window content.
func NewRootUI(window fyne.Window, app fyne.App, runner download.Runner, settings *config.Settings) *RootUI {
	ui := &RootUI{
		window:   window,
		app:      app,
		runner:   runner,
		settings: settings,
	}

	ui.createWidgets()
	ui.runner.SetUpdateCallback(ui.onTaskUpdate)
	window.SetContent(ui.createLayout())

	return ui
}

// StartUpdateProbe probes for a yt-dlp release in the background; the
// window is usable immediately.
func (ui *RootUI) StartUpdateProbe() {
	go ui.checkEngineUpdate()
}

// createWidgets builds all form widgets and loads the persisted defaults.
func (ui *RootUI) createWidgets() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(PlaceholderURL)

	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.settings.GetDownloadDirectory())

	ui.videoFormatSelect = widget.NewSelect(videoFormatNames(), nil)
	ui.videoFormatSelect.SetSelected(string(ui.settings.GetDefaultVideoFormat()))

	ui.audioFormatSelect = widget.NewSelect(audioFormatNames(), nil)
	ui.audioFormatSelect.SetSelected(string(ui.settings.GetDefaultAudioFormat()))

	ui.splitAudioCheck = widget.NewCheck(LabelSplitAudio, ui.onSplitAudioToggled)

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("")

	ui.submitButton = widget.NewButton(LabelSubmit, ui.onSubmit)
	ui.submitButton.Importance = widget.HighImportance
}

// createLayout assembles the form. The audio format row starts hidden and
// only appears while split audio is checked.
func (ui *RootUI) createLayout() fyne.CanvasObject {
	browseButton := widget.NewButton("...", ui.onBrowseFolder)
	folderRow := container.NewBorder(nil, nil, nil, browseButton, ui.folderEntry)

	ui.audioFormatRow = container.NewBorder(nil, nil, widget.NewLabel(LabelAudioFormat), nil, ui.audioFormatSelect)
	ui.audioFormatRow.Hide()
	if ui.settings.GetSplitAudio() {
		ui.splitAudioCheck.SetChecked(true)
	}

	return container.NewVBox(
		widget.NewLabel(LabelURL),
		ui.urlEntry,
		widget.NewLabel(LabelFolder),
		folderRow,
		container.NewBorder(nil, nil, widget.NewLabel(LabelVideoFormat), nil, ui.videoFormatSelect),
		ui.splitAudioCheck,
		ui.audioFormatRow,
		widget.NewSeparator(),
		ui.progressBar,
		ui.statusLabel,
		ui.submitButton,
	)
}

// onSplitAudioToggled shows or hides the audio format selector.
func (ui *RootUI) onSplitAudioToggled(checked bool) {
	if checked {
		ui.audioFormatRow.Show()
	} else {
		ui.audioFormatRow.Hide()
	}
}

// onBrowseFolder handles destination folder browsing
func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
	}, ui.window)
}

// onSubmit validates the form, persists the chosen defaults and hands the
// job to the download service.
func (ui *RootUI) onSubmit() {
	job := model.Job{
		URL:            strings.TrimSpace(ui.urlEntry.Text),
		DestinationDir: strings.TrimSpace(ui.folderEntry.Text),
		SplitAudio:     ui.splitAudioCheck.Checked,
		VideoFormat:    model.VideoFormat(ui.videoFormatSelect.Selected),
		AudioFormat:    model.AudioFormat(ui.audioFormatSelect.Selected),
	}

	if err := job.Validate(); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if !platform.IsUsableDirectory(job.DestinationDir) {
		dialog.ShowError(fmt.Errorf("destination folder does not exist: %s", job.DestinationDir), ui.window)
		return
	}

	task, err := ui.runner.Submit(job)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	// Remember the choices for the next launch.
	ui.settings.SetDownloadDirectory(job.DestinationDir)
	ui.settings.SetDefaultVideoFormat(job.VideoFormat)
	ui.settings.SetDefaultAudioFormat(job.AudioFormat)
	ui.settings.SetSplitAudio(job.SplitAudio)

	ui.activeTaskID = task.ID
	ui.submitButton.Disable()
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(string(task.Status))
}

// onTaskUpdate receives task snapshots from the download service. It runs
// on worker goroutines, so the whole handler is marshalled through fyne.Do;
// activeTaskID is then only touched on the UI thread, and an update racing
// the Submit call is handled after onSubmit stored the active ID.
func (ui *RootUI) onTaskUpdate(task *model.PipelineTask) {
	if task == nil {
		return
	}
	fyne.Do(func() {
		if task.ID != ui.activeTaskID {
			return
		}
		if task.Status.IsFinished() {
			ui.finishTask(task)
			return
		}
		if task.Status.IsActive() {
			ui.progressBar.SetValue(task.Progress)
			ui.statusLabel.SetText(string(task.Status))
		}
	})
}

// finishTask shows the terminal dialog, resets the progress bar and
// re-enables the form for the next job. Runs on the UI thread.
func (ui *RootUI) finishTask(task *model.PipelineTask) {
	ui.activeTaskID = ""
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText("")
	ui.submitButton.Enable()

	if task.Status == model.TaskStatusCompleted {
		ui.app.SendNotification(&fyne.Notification{
			Title:   TitleCompleted,
			Content: task.GetDisplayTitle(),
		})
		dialog.ShowInformation(TitleCompleted, task.Message, ui.window)
		return
	}
	dialog.ShowInformation(TitleFailed, task.Message, ui.window)
}

// checkEngineUpdate probes pip for a newer yt-dlp release. When one exists
// the upgrade command is placed on the clipboard and a system notification
// points the user at it. Probe failures are logged and otherwise ignored.
func (ui *RootUI) checkEngineUpdate() {
	available, err := platform.CheckYTDLPUpdate(context.Background())
	if err != nil {
		log.Printf("yt-dlp update probe failed: %v", err)
		return
	}
	if !available {
		return
	}

	fyne.Do(func() {
		ui.app.Clipboard().SetContent(platform.UpgradeCommand)
	})
	ui.app.SendNotification(&fyne.Notification{
		Title:   UpdateNotificationTitle,
		Content: UpdateNotificationBody,
	})
}

// videoFormatNames converts the model options into Select entries.
func videoFormatNames() []string {
	options := model.VideoFormatOptions()
	names := make([]string, len(options))
	for i, option := range options {
		names[i] = string(option)
	}
	return names
}

// audioFormatNames converts the model options into Select entries.
func audioFormatNames() []string {
	options := model.AudioFormatOptions()
	names := make([]string, len(options))
	for i, option := range options {
		names[i] = string(option)
	}
	return names
}
