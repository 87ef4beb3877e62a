// Package panels provides UI panels for the application.
package panels

import (
	"pixelgrid/internal/app"
	"pixelgrid/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.GridCanvas
	container *container.AppTabs

	// Tab content
	paintPanel  *PaintPanel
	adjustPanel *AdjustPanel
	infoPanel   *InfoPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, canvas *canvas.GridCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: canvas,
	}

	// Create individual panels
	sp.paintPanel = NewPaintPanel(state, canvas)
	sp.adjustPanel = NewAdjustPanel(state)
	sp.infoPanel = NewInfoPanel(state)

	// Create tabbed container
	sp.container = container.NewAppTabs(
		container.NewTabItem("Paint", sp.paintPanel.Container()),
		container.NewTabItem("Adjust", sp.adjustPanel.Container()),
		container.NewTabItem("Info", sp.infoPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.infoPanel.SetWindow(w)
}
