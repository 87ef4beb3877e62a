// Package history provides the bounded undo/redo stack of grid snapshots.
package history

import "pixelgrid/internal/grid"

// DefaultLimit is the maximum number of snapshots retained.
const DefaultLimit = 50

// History is an ordered sequence of grid snapshots with a cursor selecting
// the current one. Entries after the cursor are redo-able future states.
// Every entry is cloned on the way in and on the way out, so later
// mutation of a live grid can never change a stored snapshot.
type History struct {
	snapshots []*grid.Grid
	cursor    int
	limit     int
}

// New creates an empty history bounded to limit snapshots. Non-positive
// limits fall back to DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Seed resets the history to a single snapshot of g. Called whenever a
// brand-new grid is ingested.
func (h *History) Seed(g *grid.Grid) {
	h.snapshots = []*grid.Grid{g.Clone()}
	h.cursor = 0
}

// Record discards any redo branch past the cursor, appends a snapshot of
// g, and moves the cursor to it. When the bound is exceeded the oldest
// snapshot is evicted and the cursor shifts down by one.
func (h *History) Record(g *grid.Grid) {
	h.snapshots = append(h.snapshots[:h.cursor+1], g.Clone())
	h.cursor = len(h.snapshots) - 1

	if len(h.snapshots) > h.limit {
		h.snapshots = h.snapshots[1:]
		h.cursor--
	}
}

// Undo moves the cursor back one snapshot and returns a clone of it.
// ok is false at the oldest retained snapshot (a no-op, not an error).
func (h *History) Undo() (*grid.Grid, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), true
}

// Redo moves the cursor forward one snapshot and returns a clone of it.
// ok is false at the newest snapshot.
func (h *History) Redo() (*grid.Grid, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return nil, false
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), true
}

// CanUndo reports whether an older snapshot exists.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a newer snapshot exists.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Current returns a clone of the snapshot at the cursor, or nil when the
// history is empty.
func (h *History) Current() *grid.Grid {
	if len(h.snapshots) == 0 {
		return nil
	}
	return h.snapshots[h.cursor].Clone()
}
