// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"pixelgrid/internal/app"
	"pixelgrid/internal/grid"
	"pixelgrid/internal/version"
	"pixelgrid/ui/canvas"
	"pixelgrid/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const prefKeyLastDir = "lastDirectory"

// mimeByExt maps accepted file extensions to their MIME types.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	canvas    *canvas.GridCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	sizeSelect *widget.Select
	undoButton *widget.Button
	redoButton *widget.Button
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("Pixel Grid")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewGridCanvas(mw.state)

	// Create the side panel with tabs
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)

	// Create status bar
	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	// Canvas area with toolbar on top
	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	// Create main layout: side panel | canvas area
	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	// Main container with status bar at bottom
	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 750))
}

// createToolbar creates the toolbar with file, size, history, and zoom
// controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	openBtn := widget.NewButton("Open Image...", mw.onOpenImage)

	sizes := make([]string, len(grid.SupportedSizes))
	for i, s := range grid.SupportedSizes {
		sizes[i] = strconv.Itoa(s)
	}
	mw.sizeSelect = widget.NewSelect(sizes, func(selected string) {
		size, err := strconv.Atoi(selected)
		if err != nil {
			return
		}
		mw.state.SetGridSize(size)
	})
	mw.sizeSelect.SetSelected(strconv.Itoa(mw.state.GridSize()))

	mw.undoButton = widget.NewButton("Undo", mw.state.Undo)
	mw.redoButton = widget.NewButton("Redo", mw.state.Redo)
	mw.syncHistoryButtons()

	clearBtn := widget.NewButton("Clear", mw.onClear)

	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)

	return container.NewHBox(
		openBtn,
		widget.NewSeparator(),
		widget.NewLabel("Grid:"),
		mw.sizeSelect,
		widget.NewSeparator(),
		mw.undoButton,
		mw.redoButton,
		clearBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Grid", mw.onClear),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.state.Undo),
		fyne.NewMenuItem("Redo", mw.state.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset to Original", mw.state.ResetToOriginal),
		fyne.NewMenuItem("Deselect", mw.state.ClearSelection),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventGridLoaded, func(data interface{}) {
		if name, ok := data.(string); ok && name != "" {
			mw.SetTitle("Pixel Grid - " + filepath.Base(name))
			mw.updateStatus(fmt.Sprintf("Loaded %s at %d x %d",
				filepath.Base(name), mw.state.GridSize(), mw.state.GridSize()))
		} else {
			mw.SetTitle("Pixel Grid")
			mw.updateStatus("Ready")
		}
	})

	mw.state.On(app.EventProcessingChanged, func(data interface{}) {
		if processing, ok := data.(bool); ok && processing {
			mw.updateStatus("Processing image...")
		}
	})

	mw.state.On(app.EventHistoryChanged, func(interface{}) {
		mw.syncHistoryButtons()
	})

	mw.state.On(app.EventError, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Error: " + err.Error())
		}
	})

	mw.state.On(app.EventWarning, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Warning: " + err.Error())
		}
	})
}

// syncHistoryButtons enables or disables undo/redo to match the history.
func (mw *MainWindow) syncHistoryButtons() {
	if mw.state.CanUndo() {
		mw.undoButton.Enable()
	} else {
		mw.undoButton.Disable()
	}
	if mw.state.CanRedo() {
		mw.redoButton.Enable()
	} else {
		mw.redoButton.Disable()
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// onOpenImage prompts for an image file and hands its bytes to the state
// for ingestion.
func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		mw.saveLastDir(path)

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}

		name := filepath.Base(path)
		mimeType := mimeByExt[strings.ToLower(filepath.Ext(path))]
		if err := mw.state.LoadImage(name, mimeType, data); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".webp"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onClear() {
	dialog.ShowConfirm("Clear Grid", "Discard the current grid and its history?",
		func(confirmed bool) {
			if confirmed {
				mw.state.Clear()
			}
		}, mw.Window)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Pixel Grid",
		fmt.Sprintf("Pixel Grid v%s\n\n"+
			"Turn an image into an editable pixel grid.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
