package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgrid/internal/grid"
	"pixelgrid/pkg/colorutil"
)

// gridWithMark returns a 4x4 grid with cell (0,0) set to a color encoding n,
// so snapshots are distinguishable by value.
func gridWithMark(n int) *grid.Grid {
	return grid.New(4).Set(0, 0, colorutil.RGBA{R: n % 256, G: n / 256, A: 1})
}

func markOf(g *grid.Grid) int {
	c, _ := g.At(0, 0)
	return c.Color.G*256 + c.Color.R
}

func TestSeed(t *testing.T) {
	h := New(10)
	h.Seed(gridWithMark(1))

	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 1, markOf(h.Current()))
}

func TestUndoRedo(t *testing.T) {
	h := New(10)
	h.Seed(gridWithMark(0))
	h.Record(gridWithMark(1))
	h.Record(gridWithMark(2))

	g, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, markOf(g))

	g, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, markOf(g))

	// At the oldest snapshot undo is a no-op
	_, ok = h.Undo()
	assert.False(t, ok)

	g, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, 1, markOf(g))

	g, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, 2, markOf(g))

	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestUndoRedoSymmetry(t *testing.T) {
	h := New(10)
	h.Seed(gridWithMark(0))
	for i := 1; i <= 5; i++ {
		h.Record(gridWithMark(i))
	}

	before := h.Current()
	_, ok := h.Undo()
	require.True(t, ok)
	after, ok := h.Redo()
	require.True(t, ok)
	assert.True(t, before.Equal(after))
}

func TestRecordTruncatesRedoBranch(t *testing.T) {
	h := New(10)
	h.Seed(gridWithMark(0))
	h.Record(gridWithMark(1))
	h.Record(gridWithMark(2))

	_, ok := h.Undo()
	require.True(t, ok)
	require.True(t, h.CanRedo())

	// A new edit discards the redo branch
	h.Record(gridWithMark(9))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 9, markOf(h.Current()))
}

func TestBoundedEviction(t *testing.T) {
	const limit = 5
	h := New(limit)
	h.Seed(gridWithMark(0))

	for i := 1; i <= 20; i++ {
		h.Record(gridWithMark(i))
	}

	assert.Equal(t, limit, h.Len())
	assert.Equal(t, 20, markOf(h.Current()))

	// Undoing limit-1 times reaches the oldest retained snapshot, not an
	// error; one more undo is a no-op.
	var g *grid.Grid
	for i := 0; i < limit-1; i++ {
		var ok bool
		g, ok = h.Undo()
		require.True(t, ok, "undo %d", i)
	}
	assert.Equal(t, 16, markOf(g))
	_, ok := h.Undo()
	assert.False(t, ok)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	h := New(10)
	live := gridWithMark(1)
	h.Seed(live)

	// Mutating the live grid after it was recorded must not change the
	// stored snapshot.
	live = live.Set(2, 2, colorutil.Black)
	_ = live

	stored := h.Current()
	c, _ := stored.At(2, 2)
	assert.False(t, c.Modified)
}

func TestSeedResetsExistingHistory(t *testing.T) {
	h := New(10)
	h.Seed(gridWithMark(0))
	h.Record(gridWithMark(1))
	h.Record(gridWithMark(2))

	h.Seed(gridWithMark(7))
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 7, markOf(h.Current()))
}

func TestCurrentEmpty(t *testing.T) {
	h := New(10)
	assert.Nil(t, h.Current())
}
