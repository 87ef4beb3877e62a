// Package export flattens a grid into row-major records and serializes them
// as CSV or JSON for the export widgets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"pixelgrid/internal/grid"
	"pixelgrid/pkg/colorutil"
)

// Record is one exported cell in the flattened row-major sequence.
type Record struct {
	Position int     `json:"position"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	R        int     `json:"r"`
	G        int     `json:"g"`
	B        int     `json:"b"`
	A        float64 `json:"a"`
	HexColor string  `json:"hex_color"`
	Modified bool    `json:"modified"`
}

// Records flattens the grid into row-major records (y ascending, then x).
func Records(g *grid.Grid) []Record {
	cells := g.Cells()
	out := make([]Record, len(cells))
	for i, c := range cells {
		out[i] = Record{
			Position: c.Y*g.Size() + c.X,
			X:        c.X,
			Y:        c.Y,
			R:        c.Color.R,
			G:        c.Color.G,
			B:        c.Color.B,
			A:        c.Color.A,
			HexColor: colorutil.RGBAToHex(c.Color),
			Modified: c.Modified,
		}
	}
	return out
}

// ModifiedRecords flattens only the modified cells, in the same order.
func ModifiedRecords(g *grid.Grid) []Record {
	mod := g.ModifiedCells()
	out := make([]Record, len(mod))
	for i, c := range mod {
		out[i] = Record{
			Position: c.Y*g.Size() + c.X,
			X:        c.X,
			Y:        c.Y,
			R:        c.Color.R,
			G:        c.Color.G,
			B:        c.Color.B,
			A:        c.Color.A,
			HexColor: colorutil.RGBAToHex(c.Color),
			Modified: true,
		}
	}
	return out
}

// csvHeader is the fixed column order of the CSV form.
var csvHeader = []string{"position", "x", "y", "r", "g", "b", "a", "hex_color", "modified"}

// WriteCSV writes the records as delimited text with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Position),
			strconv.Itoa(r.X),
			strconv.Itoa(r.Y),
			strconv.Itoa(r.R),
			strconv.Itoa(r.G),
			strconv.Itoa(r.B),
			strconv.FormatFloat(r.A, 'g', -1, 64),
			r.HexColor,
			strconv.FormatBool(r.Modified),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.Position, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
