package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/afero"

	"github.com/vidgrab/vidgrab/internal/config"
	"github.com/vidgrab/vidgrab/internal/download"
	"github.com/vidgrab/vidgrab/internal/platform"
	"github.com/vidgrab/vidgrab/internal/transcode"
	"github.com/vidgrab/vidgrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.vidgrab.vidgrab"
	AppName = "VidGrab"

	WindowWidth  = 420
	WindowHeight = 360
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	fs := afero.NewOsFs()
	engine := download.NewYTDLPEngine()
	converter := transcode.NewService(fs)
	downloadSvc := download.NewService(fs, engine, converter, converter, settings.GetMaxParallelDownloads())

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, downloadSvc, settings)
	rootUI.StartUpdateProbe()

	// Show and run
	myWindow.ShowAndRun()
}
