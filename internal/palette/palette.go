// Package palette extracts the dominant colors of a grid using K-means
// clustering, to offer as quick-pick swatches after ingestion.
package palette

import (
	"sort"

	"gocv.io/x/gocv"

	"pixelgrid/internal/grid"
	"pixelgrid/pkg/colorutil"
)

// DefaultSwatches is the number of dominant colors offered in the UI.
const DefaultSwatches = 8

// Extract clusters the grid's cell colors (composited over white, matching
// the render path) into n dominant colors, ordered by cluster population
// descending. Fewer than n colors come back when the grid holds fewer
// distinct clusters worth of cells.
func Extract(g *grid.Grid, n int) []colorutil.RGBA {
	cells := g.Cells()
	if len(cells) == 0 || n <= 0 {
		return nil
	}
	if n > len(cells) {
		n = len(cells)
	}

	// One row per cell, three float32 columns (r,g,b).
	pixels := gocv.NewMatWithSize(len(cells), 3, gocv.MatTypeCV32F)
	defer pixels.Close()

	for i, c := range cells {
		over := colorutil.Blend(colorutil.White, c.Color)
		pixels.SetFloatAt(i, 0, float32(over.R))
		pixels.SetFloatAt(i, 1, float32(over.G))
		pixels.SetFloatAt(i, 2, float32(over.B))
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, 50, 1.0)
	gocv.KMeans(pixels, n, &labels, criteria, 5, gocv.KMeansPPCenters, &centers)

	// Rank clusters by how many cells they cover.
	counts := make([]int, n)
	for i := 0; i < len(cells); i++ {
		idx := int(labels.GetIntAt(i, 0))
		if idx >= 0 && idx < n {
			counts[idx]++
		}
	}

	clusters := make([]cluster, 0, n)
	for i := 0; i < n; i++ {
		if counts[i] == 0 {
			continue
		}
		clusters = append(clusters, cluster{
			color: colorutil.RGBA{
				R: clampChannel(centers.GetFloatAt(i, 0)),
				G: clampChannel(centers.GetFloatAt(i, 1)),
				B: clampChannel(centers.GetFloatAt(i, 2)),
				A: 1,
			},
			count: counts[i],
		})
	}

	return rank(clusters)
}

type cluster struct {
	color colorutil.RGBA
	count int
}

// rank orders clusters by population descending, deduplicating centers that
// collapsed to the same quantized color. Ties break on hex value so the
// swatch order is stable.
func rank(clusters []cluster) []colorutil.RGBA {
	merged := make(map[colorutil.RGBA]int, len(clusters))
	for _, c := range clusters {
		merged[c.color] += c.count
	}

	unique := make([]cluster, 0, len(merged))
	for color, count := range merged {
		unique = append(unique, cluster{color: color, count: count})
	}
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].count != unique[j].count {
			return unique[i].count > unique[j].count
		}
		return colorutil.RGBAToHex(unique[i].color) < colorutil.RGBAToHex(unique[j].color)
	})

	out := make([]colorutil.RGBA, len(unique))
	for i, c := range unique {
		out[i] = c.color
	}
	return out
}

func clampChannel(v float32) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v + 0.5)
}
