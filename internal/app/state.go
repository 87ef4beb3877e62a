// Package app provides the application state: the live grid, its history,
// selection and hover, the current paint color, and ingestion sequencing.
package app

import (
	"log"
	"sync"

	"pixelgrid/internal/grid"
	"pixelgrid/internal/history"
	"pixelgrid/internal/ingest"
	"pixelgrid/internal/palette"
	"pixelgrid/pkg/colorutil"
	"pixelgrid/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventGridLoaded EventType = iota
	EventGridChanged
	EventSelectionChanged
	EventHoverChanged
	EventColorChanged
	EventHistoryChanged
	EventPaletteChanged
	EventProcessingChanged
	EventError
	EventWarning
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state. All grid values it hands out are
// immutable snapshots; mutation always swaps in a new grid.
type State struct {
	mu sync.RWMutex

	grid      *grid.Grid
	history   *history.History
	selection grid.Selection
	hover     *geometry.Point

	currentColor colorutil.RGBA
	gridSize     int

	// Held source file; changing the grid size re-runs ingestion on it.
	sourceName string
	sourceMIME string
	sourceData []byte

	palette []colorutil.RGBA

	// Single outstanding-ingestion flag gating user edits, plus a
	// monotonically increasing sequence so a new request supersedes any
	// in-flight one and stale completions are discarded.
	processing bool
	ingestSeq  uint64

	listeners map[EventType][]EventListener
}

// NewState creates the application state with a blank grid at the default
// resolution and a seeded history.
func NewState() *State {
	g := grid.New(grid.DefaultSize)
	h := history.New(history.DefaultLimit)
	h.Seed(g)
	return &State{
		grid:         g,
		history:      h,
		gridSize:     grid.DefaultSize,
		currentColor: colorutil.Black,
		listeners:    make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Grid returns the current grid snapshot.
func (s *State) Grid() *grid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

// GridSize returns the selected grid resolution.
func (s *State) GridSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gridSize
}

// Selection returns the current selection.
func (s *State) Selection() grid.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Hover returns the hovered cell position, or nil when the pointer is off
// the grid.
func (s *State) Hover() *geometry.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hover == nil {
		return nil
	}
	p := *s.hover
	return &p
}

// CurrentColor returns the active paint color.
func (s *State) CurrentColor() colorutil.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentColor
}

// Palette returns the dominant-color swatches of the last ingested image.
func (s *State) Palette() []colorutil.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]colorutil.RGBA, len(s.palette))
	copy(out, s.palette)
	return out
}

// Processing reports whether an ingestion is outstanding; edits are gated
// while it is.
func (s *State) Processing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processing
}

// CanUndo reports whether an undo step exists.
func (s *State) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo step exists.
func (s *State) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// LoadImage validates the uploaded file synchronously, then decodes,
// resamples, and grids it asynchronously. A later call supersedes an
// in-flight one; the superseded result is discarded when it arrives. On
// any failure the prior grid and history are left untouched.
func (s *State) LoadImage(name, mimeType string, data []byte) error {
	// Fail fast before touching any state.
	if err := ingest.Validate(name, mimeType, int64(len(data))); err != nil {
		s.Emit(EventError, err)
		return err
	}

	s.mu.Lock()
	s.sourceName = name
	s.sourceMIME = mimeType
	s.sourceData = data
	s.ingestSeq++
	seq := s.ingestSeq
	s.processing = true
	size := s.gridSize
	s.mu.Unlock()
	s.Emit(EventProcessingChanged, true)

	go s.runIngestion(seq, name, mimeType, data, size)
	return nil
}

// runIngestion performs the decode/resample/grid pipeline for one request
// and applies the result unless a newer request superseded it.
func (s *State) runIngestion(seq uint64, name, mimeType string, data []byte, size int) {
	g, err := ingest.FromBytes(name, mimeType, data, size)

	var swatches []colorutil.RGBA
	if err == nil {
		swatches = palette.Extract(g, palette.DefaultSwatches)
	}

	s.mu.Lock()
	if seq != s.ingestSeq {
		// A newer request took over while this one was running.
		s.mu.Unlock()
		log.Printf("ingestion %d superseded, discarding result for %s", seq, name)
		return
	}
	s.processing = false
	if err == nil {
		s.grid = g
		s.history.Seed(g)
		s.selection = grid.Selection{}
		s.hover = nil
		s.palette = swatches
	}
	s.mu.Unlock()

	s.Emit(EventProcessingChanged, false)
	if err != nil {
		s.Emit(EventError, err)
		return
	}
	s.Emit(EventPaletteChanged, swatches)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventGridLoaded, name)
}

// SetGridSize switches to another supported resolution. When a source file
// is held it is re-ingested at the new size; otherwise a blank grid
// replaces the current one.
func (s *State) SetGridSize(size int) {
	if !grid.IsSupportedSize(size) {
		return
	}

	s.mu.Lock()
	if size == s.gridSize {
		s.mu.Unlock()
		return
	}
	s.gridSize = size
	name, mimeType, data := s.sourceName, s.sourceMIME, s.sourceData
	s.mu.Unlock()

	if len(data) > 0 {
		if err := s.LoadImage(name, mimeType, data); err != nil {
			log.Printf("re-ingestion at size %d failed: %v", size, err)
		}
		return
	}
	s.Clear()
}

// Clear replaces the grid with a blank one at the current resolution and
// reseeds the history.
func (s *State) Clear() {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return
	}
	s.grid = grid.New(s.gridSize)
	s.history.Seed(s.grid)
	s.selection = grid.Selection{}
	s.hover = nil
	s.mu.Unlock()

	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventGridLoaded, "")
}

// applyEdit swaps in the grid produced by fn, records it, and emits change
// events. Edits are dropped while an ingestion is outstanding, and when fn
// returns the same grid (an out-of-bounds no-op).
func (s *State) applyEdit(fn func(*grid.Grid) *grid.Grid) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		s.Emit(EventWarning, &ingest.Error{
			Kind:    ingest.KindProcessing,
			Message: "image is still processing, edit ignored",
		})
		return
	}
	next := fn(s.grid)
	if next == s.grid {
		s.mu.Unlock()
		return
	}
	s.grid = next
	s.history.Record(next)
	s.mu.Unlock()

	s.Emit(EventGridChanged, nil)
	s.Emit(EventHistoryChanged, nil)
}

// ApplyColor paints the current color onto the cell at p. Out-of-bounds
// positions are a no-op.
func (s *State) ApplyColor(p geometry.Point) {
	c := s.CurrentColor()
	s.applyEdit(func(g *grid.Grid) *grid.Grid {
		return g.Set(p.X, p.Y, c)
	})
}

// FillSelection paints the current color over every cell of the active
// selection in one write.
func (s *State) FillSelection() {
	sel := s.Selection()
	r, ok := sel.Rect()
	if !ok {
		return
	}
	c := s.CurrentColor()
	s.applyEdit(func(g *grid.Grid) *grid.Grid {
		return g.SetRegion(geometry.Point{X: r.MinX, Y: r.MinY}, geometry.Point{X: r.MaxX, Y: r.MaxY}, c)
	})
}

// editTarget returns the rectangle edits apply to: the active selection,
// or the whole grid when nothing is selected.
func (s *State) editTarget() (geometry.Point, geometry.Point) {
	sel := s.Selection()
	if r, ok := sel.Rect(); ok {
		return geometry.Point{X: r.MinX, Y: r.MinY}, geometry.Point{X: r.MaxX, Y: r.MaxY}
	}
	size := s.Grid().Size()
	return geometry.Point{}, geometry.Point{X: size - 1, Y: size - 1}
}

// AdjustBrightness multiplies the RGB channels of the edit target by
// factor.
func (s *State) AdjustBrightness(factor float64) {
	a, b := s.editTarget()
	s.applyEdit(func(g *grid.Grid) *grid.Grid {
		return g.Apply(a, b, func(c colorutil.RGBA) colorutil.RGBA {
			return colorutil.AdjustBrightness(c, factor)
		})
	})
}

// AdjustContrast scales the edit target's channels around the midpoint.
func (s *State) AdjustContrast(factor float64) {
	a, b := s.editTarget()
	s.applyEdit(func(g *grid.Grid) *grid.Grid {
		return g.Apply(a, b, func(c colorutil.RGBA) colorutil.RGBA {
			return colorutil.AdjustContrast(c, factor)
		})
	})
}

// AdjustSaturation scales the edit target's HSL saturation.
func (s *State) AdjustSaturation(factor float64) {
	a, b := s.editTarget()
	s.applyEdit(func(g *grid.Grid) *grid.Grid {
		return g.Apply(a, b, func(c colorutil.RGBA) colorutil.RGBA {
			return colorutil.AdjustSaturation(c, factor)
		})
	})
}

// ResetToOriginal restores every cell to its ingested color and records
// the restored state.
func (s *State) ResetToOriginal() {
	s.applyEdit(func(g *grid.Grid) *grid.Grid {
		return g.ResetToOriginal()
	})
}

// Undo steps the history cursor back and swaps in that snapshot.
func (s *State) Undo() {
	s.mu.Lock()
	g, ok := s.history.Undo()
	if !ok {
		s.mu.Unlock()
		return
	}
	s.grid = g
	s.mu.Unlock()

	s.Emit(EventGridChanged, nil)
	s.Emit(EventHistoryChanged, nil)
}

// Redo steps the history cursor forward and swaps in that snapshot.
func (s *State) Redo() {
	s.mu.Lock()
	g, ok := s.history.Redo()
	if !ok {
		s.mu.Unlock()
		return
	}
	s.grid = g
	s.mu.Unlock()

	s.Emit(EventGridChanged, nil)
	s.Emit(EventHistoryChanged, nil)
}

// SetCurrentColor sets the active paint color.
func (s *State) SetCurrentColor(c colorutil.RGBA) {
	s.mu.Lock()
	s.currentColor = c
	s.mu.Unlock()
	s.Emit(EventColorChanged, c)
}

// SetCurrentColorHex parses a hex color for the active paint color. On an
// invalid input the prior color is retained and only a warning is emitted.
func (s *State) SetCurrentColorHex(hex string) error {
	c, err := colorutil.HexToRGBA(hex)
	if err != nil {
		s.Emit(EventWarning, err)
		return err
	}
	s.SetCurrentColor(c)
	return nil
}

// Select makes p the single selected cell. Out-of-bounds positions clear
// the selection instead.
func (s *State) Select(p geometry.Point) {
	s.mu.Lock()
	if geometry.InBounds(p, s.grid.Size()) {
		s.selection = grid.NewSelection(p)
	} else {
		s.selection = grid.Selection{}
	}
	sel := s.selection
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, sel)
}

// SelectRegion selects the rectangle spanned by two grid positions.
func (s *State) SelectRegion(a, b geometry.Point) {
	s.mu.Lock()
	s.selection = grid.Selection{Start: a, End: b, Active: true}
	sel := s.selection
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, sel)
}

// ClearSelection deactivates the selection.
func (s *State) ClearSelection() {
	s.mu.Lock()
	s.selection = grid.Selection{}
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, grid.Selection{})
}

// SetHover marks the hovered cell; out-of-bounds positions clear it.
func (s *State) SetHover(p geometry.Point) {
	s.mu.Lock()
	changed := false
	if geometry.InBounds(p, s.grid.Size()) {
		if s.hover == nil || *s.hover != p {
			s.hover = &p
			changed = true
		}
	} else if s.hover != nil {
		s.hover = nil
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.Emit(EventHoverChanged, nil)
	}
}

// ClearHover clears the hovered cell when the pointer leaves the grid.
func (s *State) ClearHover() {
	s.mu.Lock()
	changed := s.hover != nil
	s.hover = nil
	s.mu.Unlock()

	if changed {
		s.Emit(EventHoverChanged, nil)
	}
}
