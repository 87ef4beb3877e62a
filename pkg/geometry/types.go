// Package geometry provides the coordinate types and grid/viewport mapping
// used throughout the application.
package geometry

// Point represents a grid cell position (column x, row y).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint creates a new Point.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Rect represents an inclusive rectangle of grid cells.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// NormalizeRect builds the inclusive rectangle spanned by two corner
// positions in either order; the result is the cross product of the
// min..max ranges on each axis.
func NormalizeRect(a, b Point) Rect {
	r := Rect{MinX: a.X, MinY: a.Y, MaxX: b.X, MaxY: b.Y}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// Contains returns true if the point lies inside the rectangle (inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Width returns the number of columns covered by the rectangle.
func (r Rect) Width() int {
	return r.MaxX - r.MinX + 1
}

// Height returns the number of rows covered by the rectangle.
func (r Rect) Height() int {
	return r.MaxY - r.MinY + 1
}

// CellCount returns the number of cells covered by the rectangle.
func (r Rect) CellCount() int {
	return r.Width() * r.Height()
}

// Intersect clamps the rectangle to [0,size) on both axes. The second
// return value is false when nothing remains.
func (r Rect) Intersect(size int) (Rect, bool) {
	if r.MinX < 0 {
		r.MinX = 0
	}
	if r.MinY < 0 {
		r.MinY = 0
	}
	if r.MaxX > size-1 {
		r.MaxX = size - 1
	}
	if r.MaxY > size-1 {
		r.MaxY = size - 1
	}
	if r.MinX > r.MaxX || r.MinY > r.MaxY {
		return Rect{}, false
	}
	return r, true
}
