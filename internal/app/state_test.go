package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgrid/internal/grid"
	"pixelgrid/internal/ingest"
	"pixelgrid/pkg/colorutil"
	"pixelgrid/pkg/geometry"
)

var red = colorutil.RGBA{R: 255, A: 1}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, grid.DefaultSize, s.GridSize())
	assert.Equal(t, grid.DefaultSize, s.Grid().Size())
	assert.Equal(t, colorutil.Black, s.CurrentColor())
	assert.False(t, s.Processing())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestApplyColorRecordsHistory(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)

	var gridEvents int
	s.On(EventGridChanged, func(interface{}) { gridEvents++ })

	s.ApplyColor(geometry.Point{X: 2, Y: 3})

	c, ok := s.Grid().At(2, 3)
	require.True(t, ok)
	assert.Equal(t, red, c.Color)
	assert.True(t, c.Modified)
	assert.True(t, s.CanUndo())
	assert.Equal(t, 1, gridEvents)
}

func TestApplyColorOutOfBoundsIsNoOp(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)

	var gridEvents int
	s.On(EventGridChanged, func(interface{}) { gridEvents++ })

	s.ApplyColor(geometry.Point{X: -1, Y: 0})
	s.ApplyColor(geometry.Point{X: s.GridSize(), Y: 0})

	assert.Zero(t, gridEvents, "out-of-bounds writes must not record history")
	assert.False(t, s.CanUndo())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)
	s.ApplyColor(geometry.Point{X: 1, Y: 1})

	edited := s.Grid()
	s.Undo()
	c, _ := s.Grid().At(1, 1)
	assert.False(t, c.Modified)
	assert.True(t, s.CanRedo())

	s.Redo()
	assert.True(t, s.Grid().Equal(edited))
}

func TestFillSelection(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)
	s.SelectRegion(geometry.Point{X: 5, Y: 5}, geometry.Point{X: 2, Y: 8})
	s.FillSelection()

	mod := s.Grid().ModifiedCells()
	assert.Len(t, mod, 16)
}

func TestFillWithoutSelectionIsNoOp(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)
	s.FillSelection()
	assert.Empty(t, s.Grid().ModifiedCells())
	assert.False(t, s.CanUndo())
}

func TestAdjustBrightnessOnSelection(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(colorutil.RGBA{R: 100, G: 100, B: 100, A: 1})
	s.SelectRegion(geometry.Point{}, geometry.Point{X: 1, Y: 1})
	s.FillSelection()

	s.AdjustBrightness(2)

	c, _ := s.Grid().At(0, 0)
	assert.Equal(t, 200, c.Color.R)

	// Cells outside the selection stay untouched
	c, _ = s.Grid().At(5, 5)
	assert.Equal(t, colorutil.Transparent, c.Color)
}

func TestResetToOriginal(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)
	s.ApplyColor(geometry.Point{X: 0, Y: 0})
	s.ResetToOriginal()

	assert.Empty(t, s.Grid().ModifiedCells())
	// Reset is itself recorded, so it can be undone
	assert.True(t, s.CanUndo())
}

func TestSetCurrentColorHex(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetCurrentColorHex("#336699"))
	assert.Equal(t, colorutil.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 1}, s.CurrentColor())
}

func TestSetCurrentColorHexInvalidKeepsPrior(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetCurrentColorHex("#336699"))
	prior := s.CurrentColor()

	var warnings int
	s.On(EventWarning, func(interface{}) { warnings++ })

	assert.Error(t, s.SetCurrentColorHex("not-a-color"))
	assert.Equal(t, prior, s.CurrentColor(), "invalid input must not corrupt the current color")
	assert.Equal(t, 1, warnings)
}

func TestSelectOutOfBoundsClears(t *testing.T) {
	s := NewState()
	s.Select(geometry.Point{X: 3, Y: 3})
	assert.True(t, s.Selection().Active)

	s.Select(geometry.Point{X: -1, Y: 3})
	assert.False(t, s.Selection().Active)
}

func TestHoverTracking(t *testing.T) {
	s := NewState()

	var hoverEvents int
	s.On(EventHoverChanged, func(interface{}) { hoverEvents++ })

	s.SetHover(geometry.Point{X: 4, Y: 4})
	require.NotNil(t, s.Hover())
	assert.Equal(t, geometry.Point{X: 4, Y: 4}, *s.Hover())

	// Same position again does not re-emit
	s.SetHover(geometry.Point{X: 4, Y: 4})
	assert.Equal(t, 1, hoverEvents)

	s.ClearHover()
	assert.Nil(t, s.Hover())
	assert.Equal(t, 2, hoverEvents)
}

func TestClearReseedsHistory(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)
	s.ApplyColor(geometry.Point{X: 1, Y: 1})
	require.True(t, s.CanUndo())

	s.Clear()
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Empty(t, s.Grid().ModifiedCells())
}

func TestLoadImageRejectsBadFormatSynchronously(t *testing.T) {
	s := NewState()
	prior := s.Grid()

	var errEvents int
	s.On(EventError, func(data interface{}) {
		errEvents++
		var ingErr *ingest.Error
		require.ErrorAs(t, data.(error), &ingErr)
		assert.Equal(t, ingest.KindFormat, ingErr.Kind)
	})

	err := s.LoadImage("a.gif", "image/gif", []byte{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, 1, errEvents)
	assert.False(t, s.Processing())
	assert.Same(t, prior, s.Grid(), "failed validation must not touch the grid")
}

func TestLoadImageDecodeFailureLeavesStateUntouched(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)
	s.ApplyColor(geometry.Point{X: 1, Y: 1})
	prior := s.Grid()

	done := make(chan error, 1)
	s.On(EventError, func(data interface{}) { done <- data.(error) })

	require.NoError(t, s.LoadImage("junk.png", "image/png", []byte("not an image")))

	select {
	case err := <-done:
		var ingErr *ingest.Error
		require.ErrorAs(t, err, &ingErr)
		assert.Equal(t, ingest.KindDecode, ingErr.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ingestion failure")
	}

	assert.False(t, s.Processing())
	assert.Same(t, prior, s.Grid(), "failed ingestion must not touch the grid")
	assert.True(t, s.CanUndo(), "history survives a failed ingestion")
}

func TestEditsGatedWhileProcessing(t *testing.T) {
	s := NewState()
	s.SetCurrentColor(red)

	done := make(chan struct{}, 1)
	s.On(EventError, func(interface{}) { done <- struct{}{} })

	// Kick off an ingestion that will fail slowly enough to race the edit;
	// whether or not the edit lands first, the final state must be
	// consistent: no edit applied while processing was set.
	require.NoError(t, s.LoadImage("junk.png", "image/png", []byte("x")))

	s.ApplyColor(geometry.Point{X: 0, Y: 0})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}

	if s.CanUndo() {
		// The edit beat the processing flag; it must then be fully applied.
		c, _ := s.Grid().At(0, 0)
		assert.True(t, c.Modified)
	} else {
		c, _ := s.Grid().At(0, 0)
		assert.False(t, c.Modified)
	}
}

func TestSetGridSizeWithoutSource(t *testing.T) {
	s := NewState()
	s.SetGridSize(100)
	assert.Equal(t, 100, s.GridSize())
	assert.Equal(t, 100, s.Grid().Size())

	// Unsupported sizes are ignored
	s.SetGridSize(64)
	assert.Equal(t, 100, s.GridSize())
}
