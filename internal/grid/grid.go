// Package grid provides the editable pixel grid: cells with current and
// original colors, copy-on-write mutation, and modified-cell tracking.
package grid

import (
	"pixelgrid/pkg/colorutil"
	"pixelgrid/pkg/geometry"
)

// SupportedSizes lists the grid resolutions offered by the UI.
var SupportedSizes = []int{20, 50, 100, 250, 500}

// DefaultSize is the grid resolution used before the user picks one.
const DefaultSize = 50

// IsSupportedSize reports whether n is one of the offered resolutions.
func IsSupportedSize(n int) bool {
	for _, s := range SupportedSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Cell is one addressable grid element. OriginalColor is set once at
// creation/ingestion and never mutated afterwards; Modified is set by any
// write and cleared only by ResetToOriginal.
type Cell struct {
	X             int
	Y             int
	Color         colorutil.RGBA
	OriginalColor colorutil.RGBA
	Modified      bool
}

// Pos returns the cell position as a geometry.Point.
func (c Cell) Pos() geometry.Point {
	return geometry.Point{X: c.X, Y: c.Y}
}

// Grid is a size×size array of cells treated as an immutable value: every
// mutation returns a new Grid sharing no mutable state with the receiver.
type Grid struct {
	size  int
	cells []Cell // row-major, index = y*size + x
}

// New creates a grid with every cell set to the fully-transparent white
// sentinel, unmodified, with OriginalColor equal to the sentinel.
func New(size int) *Grid {
	if size <= 0 {
		size = 1
	}
	g := &Grid{size: size, cells: make([]Cell, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.cells[y*size+x] = Cell{
				X:             x,
				Y:             y,
				Color:         colorutil.Transparent,
				OriginalColor: colorutil.Transparent,
			}
		}
	}
	return g
}

// FromCells builds a grid from a row-major cell color slice produced by
// ingestion; each cell's OriginalColor is set to the same value and
// Modified is false. len(colors) must be size*size.
func FromCells(size int, colors []colorutil.RGBA) *Grid {
	g := &Grid{size: size, cells: make([]Cell, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*size + x
			g.cells[i] = Cell{
				X:             x,
				Y:             y,
				Color:         colors[i],
				OriginalColor: colors[i],
			}
		}
	}
	return g
}

// Size returns the grid dimension (width == height).
func (g *Grid) Size() int {
	return g.size
}

// At returns the cell at (x,y). ok is false when the position is out of
// bounds; this is an expected condition at selection and edit boundaries,
// not an error.
func (g *Grid) At(x, y int) (Cell, bool) {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return Cell{}, false
	}
	return g.cells[y*g.size+x], true
}

// Set returns a new grid with the cell at (x,y) recolored and marked
// modified, preserving its OriginalColor. When the position is out of
// bounds the receiver itself is returned unchanged; callers detect the
// no-op by comparing identity.
func (g *Grid) Set(x, y int, c colorutil.RGBA) *Grid {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return g
	}
	out := g.Clone()
	cell := &out.cells[y*g.size+x]
	cell.Color = c
	cell.Modified = true
	return out
}

// SetRegion returns a new grid with every in-bounds cell of the rectangle
// spanned by the two corners (either order, inclusive) recolored and marked
// modified. Out-of-range cells are silently skipped. When no cell of the
// rectangle is in bounds the receiver itself is returned unchanged.
func (g *Grid) SetRegion(a, b geometry.Point, c colorutil.RGBA) *Grid {
	r, ok := geometry.NormalizeRect(a, b).Intersect(g.size)
	if !ok {
		return g
	}
	out := g.Clone()
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			cell := &out.cells[y*g.size+x]
			cell.Color = c
			cell.Modified = true
		}
	}
	return out
}

// Apply returns a new grid with fn applied to the current color of every
// in-bounds cell of the rectangle, marking each modified. It backs the
// brightness/contrast/saturation edit operations.
func (g *Grid) Apply(a, b geometry.Point, fn func(colorutil.RGBA) colorutil.RGBA) *Grid {
	r, ok := geometry.NormalizeRect(a, b).Intersect(g.size)
	if !ok {
		return g
	}
	out := g.Clone()
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			cell := &out.cells[y*g.size+x]
			cell.Color = fn(cell.Color)
			cell.Modified = true
		}
	}
	return out
}

// Clone returns a deep value copy sharing no mutable state with the source.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// ModifiedCells returns every modified cell in row-major order (y
// ascending, then x ascending). The order is fixed so exports and tests are
// deterministic.
func (g *Grid) ModifiedCells() []Cell {
	var out []Cell
	for _, c := range g.cells {
		if c.Modified {
			out = append(out, c)
		}
	}
	return out
}

// ModifiedCount returns the number of modified cells.
func (g *Grid) ModifiedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Modified {
			n++
		}
	}
	return n
}

// ResetToOriginal returns a new grid with every cell's color restored to
// its OriginalColor and the modified flag cleared.
func (g *Grid) ResetToOriginal() *Grid {
	out := g.Clone()
	for i := range out.cells {
		out.cells[i].Color = out.cells[i].OriginalColor
		out.cells[i].Modified = false
	}
	return out
}

// Cells returns the cells in row-major order. The returned slice is a copy;
// mutating it does not affect the grid.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Equal reports value equality of two grids.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
