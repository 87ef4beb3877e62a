package panels

import (
	"fmt"
	"log"

	"pixelgrid/internal/app"
	"pixelgrid/internal/export"
	"pixelgrid/internal/gridstats"
	"pixelgrid/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// InfoPanel shows grid statistics, the hovered cell, and export actions.
type InfoPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	hoverLabel    *widget.Label
	statsLabel    *widget.Label
	modifiedLabel *widget.Label
	modifiedCheck *widget.Check
}

// NewInfoPanel creates a new info panel.
func NewInfoPanel(state *app.State) *InfoPanel {
	ip := &InfoPanel{
		state: state,
	}

	ip.hoverLabel = widget.NewLabel("Cell: -")
	ip.statsLabel = widget.NewLabel("")
	ip.statsLabel.Wrapping = fyne.TextWrapWord
	ip.modifiedLabel = widget.NewLabel("Modified: 0 cells")

	ip.modifiedCheck = widget.NewCheck("Modified cells only", nil)

	csvButton := widget.NewButton("Export CSV...", func() {
		ip.exportGrid("csv")
	})
	jsonButton := widget.NewButton("Export JSON...", func() {
		ip.exportGrid("json")
	})

	// Layout
	ip.container = container.NewVBox(
		widget.NewCard("Cell", "", ip.hoverLabel),
		widget.NewCard("Statistics", "", container.NewVBox(
			ip.statsLabel,
			ip.modifiedLabel,
		)),
		widget.NewCard("Export", "", container.NewVBox(
			ip.modifiedCheck,
			container.NewHBox(csvButton, jsonButton),
		)),
	)

	// Register for events
	state.On(app.EventHoverChanged, func(interface{}) {
		ip.updateHover()
	})
	state.On(app.EventGridChanged, func(interface{}) {
		ip.updateStats()
	})
	state.On(app.EventGridLoaded, func(interface{}) {
		ip.updateStats()
	})
	state.On(app.EventHistoryChanged, func(interface{}) {
		ip.updateStats()
	})

	ip.updateStats()
	return ip
}

// Container returns the panel container.
func (ip *InfoPanel) Container() fyne.CanvasObject {
	return ip.container
}

// SetWindow sets the parent window for dialogs.
func (ip *InfoPanel) SetWindow(w fyne.Window) {
	ip.window = w
}

func (ip *InfoPanel) updateHover() {
	p := ip.state.Hover()
	if p == nil {
		ip.hoverLabel.SetText("Cell: -")
		return
	}
	cell, ok := ip.state.Grid().At(p.X, p.Y)
	if !ok {
		ip.hoverLabel.SetText("Cell: -")
		return
	}
	ip.hoverLabel.SetText(fmt.Sprintf("Cell: (%d, %d) %s",
		p.X, p.Y, colorutil.RGBAToHex(cell.Color)))
}

func (ip *InfoPanel) updateStats() {
	g := ip.state.Grid()
	st := gridstats.Compute(g)

	ip.statsLabel.SetText(fmt.Sprintf(
		"Luminance: mean %.3f, stddev %.3f\nRange: %.3f - %.3f\nContrast: %.1f:1",
		st.MeanLuminance, st.StdDevLuminance,
		st.MinLuminance, st.MaxLuminance,
		st.ExtremeContrast,
	))
	ip.modifiedLabel.SetText(fmt.Sprintf("Modified: %d of %d cells (%.1f%%)",
		st.Modified, st.CellCount, 100*st.ModifiedRatio()))
}

// exportGrid writes the grid to a file chosen by the user.
func (ip *InfoPanel) exportGrid(format string) {
	if ip.window == nil {
		return
	}

	g := ip.state.Grid()
	var records []export.Record
	if ip.modifiedCheck.Checked {
		records = export.ModifiedRecords(g)
	} else {
		records = export.Records(g)
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ip.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if format == "json" {
			err = export.WriteJSON(writer, records)
		} else {
			err = export.WriteCSV(writer, records)
		}
		if err != nil {
			dialog.ShowError(err, ip.window)
			return
		}
		log.Printf("exported %d cells to %s", len(records), writer.URI())
	}, ip.window)
	save.SetFileName("grid." + format)
	save.Show()
}
