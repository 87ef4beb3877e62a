package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixelgrid/pkg/colorutil"
)

var (
	red  = colorutil.RGBA{R: 255, A: 1}
	blue = colorutil.RGBA{B: 255, A: 1}
)

func TestRankOrdersByPopulation(t *testing.T) {
	out := rank([]cluster{
		{color: blue, count: 3},
		{color: red, count: 10},
		{color: colorutil.White, count: 7},
	})

	assert.Equal(t, []colorutil.RGBA{red, colorutil.White, blue}, out)
}

func TestRankMergesDuplicateCenters(t *testing.T) {
	out := rank([]cluster{
		{color: red, count: 4},
		{color: red, count: 4},
		{color: blue, count: 5},
	})

	// The two red clusters merge to count 8 and outrank blue.
	assert.Equal(t, []colorutil.RGBA{red, blue}, out)
}

func TestRankTieBreaksOnHex(t *testing.T) {
	out := rank([]cluster{
		{color: colorutil.White, count: 2}, // #ffffff
		{color: colorutil.Black, count: 2}, // #000000
	})

	assert.Equal(t, []colorutil.RGBA{colorutil.Black, colorutil.White}, out)
}

func TestClampChannel(t *testing.T) {
	assert.Equal(t, 0, clampChannel(-3.5))
	assert.Equal(t, 255, clampChannel(300))
	assert.Equal(t, 128, clampChannel(127.6))
}
