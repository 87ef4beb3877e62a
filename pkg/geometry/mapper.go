package geometry

import "math"

// GridToViewport maps a grid position to the viewport pixel position of its
// top-left corner. cellSize must be a positive integer in the render path,
// so there is no rounding ambiguity.
func GridToViewport(gridX, gridY, cellSize int) (px, py int) {
	return gridX * cellSize, gridY * cellSize
}

// ViewportToGrid maps a viewport pixel position to the grid cell containing
// it, by floor division. It is the exact left inverse of GridToViewport for
// any point inside a cell.
func ViewportToGrid(px, py float64, cellSize int) Point {
	return Point{
		X: int(math.Floor(px / float64(cellSize))),
		Y: int(math.Floor(py / float64(cellSize))),
	}
}

// InBounds reports whether the position lies within a size×size grid.
func InBounds(p Point, size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// VisibleRange returns the minimal inclusive rectangle of grid cells
// intersecting the scrolled viewport, clamped to [0,gridSize-1]. Renderers
// use it to bound drawing cost to the visible cells instead of the whole
// grid. ok is false when the viewport lies entirely outside the grid.
func VisibleRange(viewportW, viewportH, scrollX, scrollY float64, cellSize, gridSize int) (r Rect, ok bool) {
	cs := float64(cellSize)
	startX := int(math.Floor(scrollX / cs))
	startY := int(math.Floor(scrollY / cs))
	endX := startX + int(math.Ceil(viewportW/cs))
	endY := startY + int(math.Ceil(viewportH/cs))

	return Rect{MinX: startX, MinY: startY, MaxX: endX, MaxY: endY}.Intersect(gridSize)
}
