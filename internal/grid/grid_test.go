package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgrid/pkg/colorutil"
	"pixelgrid/pkg/geometry"
)

var red = colorutil.RGBA{R: 255, A: 1}

func TestNewGrid(t *testing.T) {
	g := New(20)
	assert.Equal(t, 20, g.Size())
	assert.Empty(t, g.ModifiedCells())

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			c, ok := g.At(x, y)
			require.True(t, ok)
			assert.Equal(t, x, c.X)
			assert.Equal(t, y, c.Y)
			assert.Equal(t, colorutil.Transparent, c.Color)
			assert.Equal(t, colorutil.Transparent, c.OriginalColor)
			assert.False(t, c.Modified)
		}
	}
}

func TestAtOutOfBounds(t *testing.T) {
	g := New(10)
	for _, p := range []geometry.Point{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 100, Y: 100}} {
		_, ok := g.At(p.X, p.Y)
		assert.False(t, ok, "position %v", p)
	}
}

func TestSet(t *testing.T) {
	g := New(10)
	g2 := g.Set(3, 4, red)

	// Original grid untouched
	c, _ := g.At(3, 4)
	assert.Equal(t, colorutil.Transparent, c.Color)
	assert.False(t, c.Modified)

	// New grid carries the write
	c, ok := g2.At(3, 4)
	require.True(t, ok)
	assert.Equal(t, red, c.Color)
	assert.True(t, c.Modified)
	assert.Equal(t, colorutil.Transparent, c.OriginalColor, "original color must survive writes")

	// Only that cell changed
	assert.Len(t, g2.ModifiedCells(), 1)
}

func TestSetOutOfBoundsIsNoOp(t *testing.T) {
	g := New(10)
	g2 := g.Set(10, 3, red)

	// Same reference, equal by value
	assert.Same(t, g, g2)
	assert.True(t, g.Equal(g2))
}

func TestSetRegion(t *testing.T) {
	g := New(10)

	// Corners in either order span the same rectangle: x in [2,5], y in [5,8]
	g2 := g.SetRegion(geometry.Point{X: 5, Y: 5}, geometry.Point{X: 2, Y: 8}, red)

	mod := g2.ModifiedCells()
	assert.Len(t, mod, 16)
	for _, c := range mod {
		assert.GreaterOrEqual(t, c.X, 2)
		assert.LessOrEqual(t, c.X, 5)
		assert.GreaterOrEqual(t, c.Y, 5)
		assert.LessOrEqual(t, c.Y, 8)
		assert.Equal(t, red, c.Color)
	}
}

func TestSetRegionPartiallyOutOfBounds(t *testing.T) {
	g := New(5)
	g2 := g.SetRegion(geometry.Point{X: 3, Y: 3}, geometry.Point{X: 9, Y: 9}, red)

	// Only the in-bounds 2x2 corner is written
	assert.Len(t, g2.ModifiedCells(), 4)
}

func TestSetRegionEntirelyOutOfBounds(t *testing.T) {
	g := New(5)
	g2 := g.SetRegion(geometry.Point{X: 7, Y: 7}, geometry.Point{X: 9, Y: 9}, red)
	assert.Same(t, g, g2)
}

func TestModifiedCellsRowMajorOrder(t *testing.T) {
	g := New(10).
		Set(7, 2, red).
		Set(1, 5, red).
		Set(3, 2, red)

	mod := g.ModifiedCells()
	require.Len(t, mod, 3)
	assert.Equal(t, geometry.Point{X: 3, Y: 2}, mod[0].Pos())
	assert.Equal(t, geometry.Point{X: 7, Y: 2}, mod[1].Pos())
	assert.Equal(t, geometry.Point{X: 1, Y: 5}, mod[2].Pos())
}

func TestResetToOriginal(t *testing.T) {
	colors := make([]colorutil.RGBA, 16)
	for i := range colors {
		colors[i] = colorutil.RGBA{R: i * 10, G: 5, B: 0, A: 1}
	}
	g := FromCells(4, colors)

	edited := g.SetRegion(geometry.Point{}, geometry.Point{X: 3, Y: 3}, red)
	require.Len(t, edited.ModifiedCells(), 16)

	restored := edited.ResetToOriginal()
	assert.Empty(t, restored.ModifiedCells())
	for _, c := range restored.Cells() {
		assert.Equal(t, c.OriginalColor, c.Color)
	}
	assert.True(t, restored.Equal(g))
}

func TestApply(t *testing.T) {
	colors := make([]colorutil.RGBA, 9)
	for i := range colors {
		colors[i] = colorutil.RGBA{R: 100, G: 100, B: 100, A: 1}
	}
	g := FromCells(3, colors)

	brightened := g.Apply(geometry.Point{}, geometry.Point{X: 2, Y: 2}, func(c colorutil.RGBA) colorutil.RGBA {
		return colorutil.AdjustBrightness(c, 2)
	})

	for _, c := range brightened.Cells() {
		assert.Equal(t, 200, c.Color.R)
		assert.True(t, c.Modified)
		assert.Equal(t, 100, c.OriginalColor.R)
	}
}

func TestCloneIndependence(t *testing.T) {
	g := New(5)
	clone := g.Clone()

	mutated := clone.Set(0, 0, red)
	require.NotSame(t, clone, mutated)

	// Neither the source nor the clone observe the write
	c, _ := g.At(0, 0)
	assert.False(t, c.Modified)
	c, _ = clone.At(0, 0)
	assert.False(t, c.Modified)
}

func TestFromCells(t *testing.T) {
	colors := []colorutil.RGBA{red, colorutil.Black, colorutil.White, colorutil.Transparent}
	g := FromCells(2, colors)

	c, _ := g.At(0, 0)
	assert.Equal(t, red, c.Color)
	c, _ = g.At(1, 1)
	assert.Equal(t, colorutil.Transparent, c.Color)
	assert.Empty(t, g.ModifiedCells())
}

func TestIsSupportedSize(t *testing.T) {
	for _, n := range SupportedSizes {
		assert.True(t, IsSupportedSize(n))
	}
	assert.False(t, IsSupportedSize(0))
	assert.False(t, IsSupportedSize(64))
}

func TestSelection(t *testing.T) {
	var s Selection
	_, ok := s.Rect()
	assert.False(t, ok, "inactive selection selects nothing")
	assert.False(t, s.Contains(geometry.Point{}))

	s = Selection{Start: geometry.Point{X: 5, Y: 5}, End: geometry.Point{X: 2, Y: 8}, Active: true}
	r, ok := s.Rect()
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{MinX: 2, MinY: 5, MaxX: 5, MaxY: 8}, r)
	assert.True(t, s.Contains(geometry.Point{X: 4, Y: 6}))
	assert.False(t, s.Contains(geometry.Point{X: 6, Y: 6}))

	one := NewSelection(geometry.Point{X: 1, Y: 1})
	r, ok = one.Rect()
	require.True(t, ok)
	assert.Equal(t, 1, r.CellCount())
}
