// Package render draws a grid (or a visible sub-rectangle of it) onto a
// raster surface. The base layer and the selection/hover overlay are drawn
// independently so pointer movement never forces a full repaint.
package render

import (
	"image"
	"image/color"

	"pixelgrid/internal/grid"
	"pixelgrid/pkg/colorutil"
	"pixelgrid/pkg/geometry"
)

const (
	// blockThreshold is the grid size at and above which the block
	// renderer is selected instead of the detail renderer.
	blockThreshold = 250

	// minLabelCellSize is the smallest rendered cell size at which channel
	// value labels are drawn.
	minLabelCellSize = 24
)

// Border and overlay colors.
var (
	borderNeutral  = color.NRGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	borderModified = color.NRGBA{R: 0xe6, G: 0x73, B: 0x00, A: 0xff}
	selectionColor = color.NRGBA{R: 0xff, G: 0xd5, B: 0x00, A: 0xff}
	hoverColor     = color.NRGBA{R: 0x00, G: 0xb0, B: 0xff, A: 0xff}
	labelDark      = color.NRGBA{A: 0xff}
	labelLight     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Viewport describes what part of the grid is drawn and at what scale.
type Viewport struct {
	CellSize int
	Visible  geometry.Rect
}

// Renderer draws the base layer of a grid into dst. Implementations must
// satisfy the same visual contract; they differ only in per-cell cost.
type Renderer interface {
	Draw(dst *image.RGBA, g *grid.Grid, vp Viewport)
}

// ForGridSize selects the renderer strategy: per-cell detail below the
// threshold, flat blocks at and above it.
func ForGridSize(size int) Renderer {
	if size >= blockThreshold {
		return BlockRenderer{}
	}
	return DetailRenderer{}
}

// CellSizeFor derives the rendered cell size from the grid resolution and
// zoom level. Larger grids get a smaller base size so the whole grid stays
// navigable; the result never drops below one pixel.
func CellSizeFor(gridSize int, zoom float64) int {
	base := 640 / gridSize
	if base < 2 {
		base = 2
	}
	if base > 32 {
		base = 32
	}
	cs := int(float64(base)*zoom + 0.5)
	if cs < 1 {
		cs = 1
	}
	return cs
}

// cellFill returns the cell color composited over the opaque white
// background.
func cellFill(c grid.Cell) color.NRGBA {
	return colorutil.Blend(colorutil.White, c.Color).ToNRGBA()
}

// DetailRenderer draws each visible cell as a filled square with a one-unit
// border signalling the modified flag, and channel-value labels once the
// cell size is large enough to keep them readable.
type DetailRenderer struct{}

// Draw implements Renderer.
func (DetailRenderer) Draw(dst *image.RGBA, g *grid.Grid, vp Viewport) {
	cs := vp.CellSize
	for y := vp.Visible.MinY; y <= vp.Visible.MaxY; y++ {
		for x := vp.Visible.MinX; x <= vp.Visible.MaxX; x++ {
			cell, ok := g.At(x, y)
			if !ok {
				continue
			}
			px, py := geometry.GridToViewport(x, y, cs)
			fill := cellFill(cell)
			fillRect(dst, px, py, cs, cs, fill)

			border := borderNeutral
			if cell.Modified {
				border = borderModified
			}
			strokeRect(dst, px, py, cs, cs, 1, border)

			if cs >= minLabelCellSize {
				drawChannelLabels(dst, cell, px, py, cs)
			}
		}
	}
}

// BlockRenderer draws each visible cell as a flat filled square with no
// border or labels; the cheap path that keeps 250,000+ cell grids
// interactive.
type BlockRenderer struct{}

// Draw implements Renderer.
func (BlockRenderer) Draw(dst *image.RGBA, g *grid.Grid, vp Viewport) {
	cs := vp.CellSize
	for y := vp.Visible.MinY; y <= vp.Visible.MaxY; y++ {
		for x := vp.Visible.MinX; x <= vp.Visible.MaxX; x++ {
			cell, ok := g.At(x, y)
			if !ok {
				continue
			}
			px, py := geometry.GridToViewport(x, y, cs)
			fillRect(dst, px, py, cs, cs, cellFill(cell))
		}
	}
}

// DrawOverlay draws the selection and hover outlines on top of the base
// layer. It repaints nothing else, so hover changes stay cheap at any grid
// size.
func DrawOverlay(dst *image.RGBA, sel grid.Selection, hover *geometry.Point, cellSize int) {
	if r, ok := sel.Rect(); ok {
		px, py := geometry.GridToViewport(r.MinX, r.MinY, cellSize)
		strokeRect(dst, px, py, r.Width()*cellSize, r.Height()*cellSize, 2, selectionColor)
	}
	if hover != nil {
		px, py := geometry.GridToViewport(hover.X, hover.Y, cellSize)
		strokeRect(dst, px, py, cellSize, cellSize, 1, hoverColor)
	}
}

// drawChannelLabels renders the R, G, and B values as three stacked rows of
// bitmap digits, choosing dark or light text by the cell's luminance.
func drawChannelLabels(dst *image.RGBA, cell grid.Cell, px, py, cs int) {
	over := colorutil.Blend(colorutil.White, cell.Color)
	text := labelDark
	if colorutil.Luminance(over) < 0.45 {
		text = labelLight
	}

	scale := cs / 24
	if scale < 1 {
		scale = 1
	}
	lineH := (glyphRows + 1) * scale
	values := [3]int{cell.Color.R, cell.Color.G, cell.Color.B}
	for i, v := range values {
		drawNumber(dst, v, px+2*scale, py+2*scale+i*lineH, scale, text)
	}
}

// fillRect fills a rectangle clipped to dst.
func fillRect(dst *image.RGBA, x, y, w, h int, c color.NRGBA) {
	b := dst.Bounds()
	x0, y0 := max(x, b.Min.X), max(y, b.Min.Y)
	x1, y1 := min(x+w, b.Max.X), min(y+h, b.Max.Y)
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			dst.SetRGBA(xx, yy, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

// strokeRect draws a rectangle outline of the given thickness, clipped to
// dst.
func strokeRect(dst *image.RGBA, x, y, w, h, thickness int, c color.NRGBA) {
	fillRect(dst, x, y, w, thickness, c)
	fillRect(dst, x, y+h-thickness, w, thickness, c)
	fillRect(dst, x, y, thickness, h, c)
	fillRect(dst, x+w-thickness, y, thickness, h, c)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
