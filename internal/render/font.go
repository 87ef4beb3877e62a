package render

import (
	"image"
	"image/color"
	"strconv"
)

const (
	glyphCols = 3
	glyphRows = 5
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9. Each digit is
// five rows of three bits.
var digitPatterns = [10][glyphRows]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// drawNumber renders a non-negative integer in the 3x5 bitmap font at the
// given scale, clipped to dst.
func drawNumber(dst *image.RGBA, n int, x, y, scale int, c color.NRGBA) {
	if n < 0 {
		n = 0
	}
	for i, ch := range strconv.Itoa(n) {
		drawDigit(dst, int(ch-'0'), x+i*(glyphCols+1)*scale, y, scale, c)
	}
}

func drawDigit(dst *image.RGBA, d, x, y, scale int, c color.NRGBA) {
	if d < 0 || d > 9 {
		return
	}
	pattern := digitPatterns[d]
	for row := 0; row < glyphRows; row++ {
		for col := 0; col < glyphCols; col++ {
			if pattern[row]&(1<<(glyphCols-1-col)) == 0 {
				continue
			}
			fillRect(dst, x+col*scale, y+row*scale, scale, scale, c)
		}
	}
}
