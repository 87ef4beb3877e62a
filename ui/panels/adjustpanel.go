package panels

import (
	"fmt"

	"pixelgrid/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AdjustPanel applies brightness, contrast, and saturation adjustments to
// the selection, or to the whole grid when nothing is selected.
type AdjustPanel struct {
	state     *app.State
	container fyne.CanvasObject

	factorSlider *widget.Slider
	factorLabel  *widget.Label
	targetLabel  *widget.Label
}

// NewAdjustPanel creates a new adjust panel.
func NewAdjustPanel(state *app.State) *AdjustPanel {
	ap := &AdjustPanel{
		state: state,
	}

	ap.factorLabel = widget.NewLabel("Factor: 1.00")
	ap.targetLabel = widget.NewLabel("Target: whole grid")

	// Factor as a percentage; 100 means no change
	ap.factorSlider = widget.NewSlider(10, 300)
	ap.factorSlider.Step = 5
	ap.factorSlider.SetValue(100)
	ap.factorSlider.OnChanged = func(val float64) {
		ap.factorLabel.SetText(fmt.Sprintf("Factor: %.2f", val/100))
	}

	brightnessButton := widget.NewButton("Brightness", func() {
		state.AdjustBrightness(ap.factor())
	})
	contrastButton := widget.NewButton("Contrast", func() {
		state.AdjustContrast(ap.factor())
	})
	saturationButton := widget.NewButton("Saturation", func() {
		state.AdjustSaturation(ap.factor())
	})
	resetButton := widget.NewButton("Reset to Original", func() {
		state.ResetToOriginal()
	})

	// Layout
	ap.container = container.NewVBox(
		widget.NewCard("Adjustment", "", container.NewVBox(
			ap.factorLabel,
			ap.factorSlider,
			ap.targetLabel,
			container.NewHBox(brightnessButton, contrastButton, saturationButton),
		)),
		widget.NewCard("Restore", "", resetButton),
	)

	// Register for events
	state.On(app.EventSelectionChanged, func(interface{}) {
		sel := state.Selection()
		if r, ok := sel.Rect(); ok {
			ap.targetLabel.SetText(fmt.Sprintf("Target: %d cells", r.CellCount()))
		} else {
			ap.targetLabel.SetText("Target: whole grid")
		}
	})

	return ap
}

// Container returns the panel container.
func (ap *AdjustPanel) Container() fyne.CanvasObject {
	return ap.container
}

func (ap *AdjustPanel) factor() float64 {
	return ap.factorSlider.Value / 100
}
