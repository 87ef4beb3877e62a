package panels

import (
	"fmt"
	"image/color"

	"pixelgrid/internal/app"
	"pixelgrid/pkg/colorutil"
	"pixelgrid/ui/canvas"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PaintPanel holds the paint color, interaction mode, and swatches of the
// ingested image's dominant colors.
type PaintPanel struct {
	state     *app.State
	canvas    *canvas.GridCanvas
	container fyne.CanvasObject

	hexEntry     *widget.Entry
	colorPreview *fynecanvas.Rectangle
	modeSelect   *widget.RadioGroup
	swatchRow    *fyne.Container
	statusLabel  *widget.Label
}

// NewPaintPanel creates a new paint panel.
func NewPaintPanel(state *app.State, cvs *canvas.GridCanvas) *PaintPanel {
	pp := &PaintPanel{
		state:  state,
		canvas: cvs,
	}

	pp.statusLabel = widget.NewLabel("")
	pp.statusLabel.Wrapping = fyne.TextWrapWord

	pp.colorPreview = fynecanvas.NewRectangle(toDisplayColor(state.CurrentColor()))
	pp.colorPreview.SetMinSize(fyne.NewSize(40, 40))

	pp.hexEntry = widget.NewEntry()
	pp.hexEntry.SetPlaceHolder("#rrggbb")
	pp.hexEntry.SetText(colorutil.RGBAToHex(state.CurrentColor()))
	pp.hexEntry.OnSubmitted = func(text string) {
		if err := state.SetCurrentColorHex(text); err != nil {
			pp.statusLabel.SetText(fmt.Sprintf("Invalid color: %s", text))
			return
		}
		pp.statusLabel.SetText("")
	}

	pp.modeSelect = widget.NewRadioGroup([]string{"Paint", "Select"}, func(selected string) {
		if selected == "Select" {
			cvs.SetMode(canvas.ModeSelect)
		} else {
			cvs.SetMode(canvas.ModePaint)
		}
	})
	pp.modeSelect.SetSelected("Paint")
	pp.modeSelect.Horizontal = true

	fillButton := widget.NewButton("Fill Selection", func() {
		state.FillSelection()
	})
	deselectButton := widget.NewButton("Deselect", func() {
		state.ClearSelection()
	})

	pp.swatchRow = container.NewGridWithColumns(4)

	// Layout
	pp.container = container.NewVBox(
		widget.NewCard("Color", "", container.NewVBox(
			container.NewBorder(nil, nil, pp.colorPreview, nil, pp.hexEntry),
			pp.statusLabel,
		)),
		widget.NewCard("Palette", "", pp.swatchRow),
		widget.NewCard("Tool", "", container.NewVBox(
			pp.modeSelect,
			container.NewHBox(fillButton, deselectButton),
		)),
	)

	// Register for events
	state.On(app.EventColorChanged, func(data interface{}) {
		c := data.(colorutil.RGBA)
		pp.colorPreview.FillColor = toDisplayColor(c)
		pp.colorPreview.Refresh()
		pp.hexEntry.SetText(colorutil.RGBAToHex(c))
	})
	state.On(app.EventPaletteChanged, func(interface{}) {
		pp.rebuildSwatches()
	})
	state.On(app.EventWarning, func(data interface{}) {
		if err, ok := data.(error); ok {
			pp.statusLabel.SetText(err.Error())
		}
	})

	return pp
}

// Container returns the panel container.
func (pp *PaintPanel) Container() fyne.CanvasObject {
	return pp.container
}

// rebuildSwatches replaces the swatch row with the current palette.
func (pp *PaintPanel) rebuildSwatches() {
	pp.swatchRow.Objects = nil
	for _, c := range pp.state.Palette() {
		pp.swatchRow.Add(newSwatch(c, pp.state.SetCurrentColor))
	}
	pp.swatchRow.Refresh()
}

// swatch is a tappable color square.
type swatch struct {
	widget.BaseWidget
	color    colorutil.RGBA
	rect     *fynecanvas.Rectangle
	onTapped func(colorutil.RGBA)
}

func newSwatch(c colorutil.RGBA, onTapped func(colorutil.RGBA)) *swatch {
	s := &swatch{
		color:    c,
		rect:     fynecanvas.NewRectangle(toDisplayColor(c)),
		onTapped: onTapped,
	}
	s.rect.SetMinSize(fyne.NewSize(32, 32))
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.onTapped != nil {
		s.onTapped(s.color)
	}
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

// toDisplayColor converts an application color to a Fyne display color.
func toDisplayColor(c colorutil.RGBA) color.Color {
	return c.ToNRGBA()
}
