package gridstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgrid/internal/grid"
	"pixelgrid/pkg/colorutil"
	"pixelgrid/pkg/geometry"
)

func TestComputeBlankGrid(t *testing.T) {
	// A blank grid is all transparent cells, which composite to white.
	s := Compute(grid.New(10))

	assert.Equal(t, 100, s.CellCount)
	assert.Equal(t, 0, s.Modified)
	assert.InDelta(t, 1, s.MeanLuminance, 1e-9)
	assert.InDelta(t, 0, s.StdDevLuminance, 1e-9)
	assert.InDelta(t, 1, s.ExtremeContrast, 1e-9)
	assert.Equal(t, 100, s.Histogram[HistogramBins-1])
}

func TestComputeBlackAndWhite(t *testing.T) {
	g := grid.New(2).
		SetRegion(geometry.Point{}, geometry.Point{X: 1, Y: 0}, colorutil.Black)

	s := Compute(g)
	assert.Equal(t, 2, s.Modified)
	assert.InDelta(t, 0.5, s.ModifiedRatio(), 1e-9)
	assert.InDelta(t, 0, s.MinLuminance, 1e-9)
	assert.InDelta(t, 1, s.MaxLuminance, 1e-9)
	assert.InDelta(t, 21, s.ExtremeContrast, 1e-9)
	assert.InDelta(t, 0.5, s.MeanLuminance, 1e-9)
	assert.Equal(t, 2, s.Histogram[0])
	assert.Equal(t, 2, s.Histogram[HistogramBins-1])
}

func TestComputeCountsModified(t *testing.T) {
	g := grid.New(5).Set(0, 0, colorutil.RGBA{R: 40, G: 40, B: 40, A: 1})
	s := Compute(g)
	require.Equal(t, 1, s.Modified)
	assert.Greater(t, s.StdDevLuminance, 0.0)
}
