// Package main provides the entry point for the Pixel Grid application.
package main

import (
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"pixelgrid/internal/app"
	"pixelgrid/internal/version"
	"pixelgrid/ui/mainwindow"
)

const appTitle = "Pixel Grid"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.pixelgrid.editor")
	fyneApp.Settings().SetTheme(&app.EditorTheme{})

	state := app.NewState()

	win := mainwindow.New(fyneApp, state)
	win.ShowAndRun()
}
