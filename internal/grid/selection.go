package grid

import "pixelgrid/pkg/geometry"

// Selection is a rectangle spanned by two grid positions in either order.
// An inactive selection selects nothing.
type Selection struct {
	Start  geometry.Point
	End    geometry.Point
	Active bool
}

// NewSelection creates an active single-cell selection at p.
func NewSelection(p geometry.Point) Selection {
	return Selection{Start: p, End: p, Active: true}
}

// Rect returns the normalized inclusive rectangle. ok is false for an
// inactive selection.
func (s Selection) Rect() (geometry.Rect, bool) {
	if !s.Active {
		return geometry.Rect{}, false
	}
	return geometry.NormalizeRect(s.Start, s.End), true
}

// Contains reports whether the position lies inside an active selection.
func (s Selection) Contains(p geometry.Point) bool {
	r, ok := s.Rect()
	return ok && r.Contains(p)
}
