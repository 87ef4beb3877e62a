// Package gridstats computes luminance statistics over a grid for the info
// panel: mean, spread, extremes, and a coarse histogram.
package gridstats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pixelgrid/internal/grid"
	"pixelgrid/pkg/colorutil"
)

// HistogramBins is the number of luminance buckets reported.
const HistogramBins = 16

// Stats summarizes the luminance distribution and edit state of a grid.
type Stats struct {
	MeanLuminance   float64
	StdDevLuminance float64
	MinLuminance    float64
	MaxLuminance    float64
	// ExtremeContrast is the contrast ratio between the darkest and
	// brightest cells, in [1,21].
	ExtremeContrast float64
	// Histogram counts cells per luminance bucket over [0,1].
	Histogram [HistogramBins]int
	CellCount int
	Modified  int
}

// Compute walks every cell once and derives the luminance statistics.
// Transparent cells still contribute their RGB luminance, matching how the
// renderer composites them over white.
func Compute(g *grid.Grid) Stats {
	cells := g.Cells()
	s := Stats{CellCount: len(cells)}
	if len(cells) == 0 {
		return s
	}

	lum := make([]float64, len(cells))
	over := make([]colorutil.RGBA, len(cells))
	for i, c := range cells {
		over[i] = colorutil.Blend(colorutil.White, c.Color)
		lum[i] = colorutil.Luminance(over[i])
		if c.Modified {
			s.Modified++
		}

		bucket := int(lum[i] * HistogramBins)
		if bucket >= HistogramBins {
			bucket = HistogramBins - 1
		}
		s.Histogram[bucket]++
	}

	s.MeanLuminance = stat.Mean(lum, nil)
	if len(lum) > 1 {
		s.StdDevLuminance = stat.StdDev(lum, nil)
	}
	minIdx := floats.MinIdx(lum)
	maxIdx := floats.MaxIdx(lum)
	s.MinLuminance = lum[minIdx]
	s.MaxLuminance = lum[maxIdx]
	s.ExtremeContrast = colorutil.ContrastRatio(over[minIdx], over[maxIdx])
	return s
}

// ModifiedRatio returns the fraction of cells that are modified.
func (s Stats) ModifiedRatio() float64 {
	if s.CellCount == 0 {
		return 0
	}
	return float64(s.Modified) / float64(s.CellCount)
}
