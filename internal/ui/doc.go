// Package ui implements the Fyne front end: a single-job form with URL,
// destination folder and format fields, a progress bar fed by the download
// service, and terminal dialogs. All widget mutations from background
// goroutines go through fyne.Do.
package ui
