// Package colorutil provides the color math shared across the pixel grid editor:
// RGBA/HSL/HSV conversions, brightness/contrast/saturation adjustments, alpha
// compositing, WCAG luminance/contrast, and hex parsing.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGBA is the color value used by grid cells. Channels are integers in
// [0,255]; alpha is a real in [0,1]. The type is treated as an immutable
// value everywhere. Out-of-range channels are not rejected here; consuming
// operations clamp at their final stage.
type RGBA struct {
	R int     `json:"r"`
	G int     `json:"g"`
	B int     `json:"b"`
	A float64 `json:"a"`
}

// HSL holds hue in degrees [0,360] and saturation/lightness in percent
// [0,100], each rounded to the nearest integer.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// HSV holds hue in degrees [0,360] and saturation/value in percent [0,100],
// each rounded to the nearest integer.
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// Common colors used throughout the application.
var (
	Black = RGBA{R: 0, G: 0, B: 0, A: 1}
	White = RGBA{R: 255, G: 255, B: 255, A: 1}
	// Transparent is the fully-transparent white sentinel used for empty
	// grid cells and letterbox fill.
	Transparent = RGBA{R: 255, G: 255, B: 255, A: 0}
)

// ErrInvalidHex reports a hex string that is not exactly six hex digits with
// an optional leading '#'.
type ErrInvalidHex struct {
	Input string
}

func (e *ErrInvalidHex) Error() string {
	return fmt.Sprintf("invalid hex color %q: want 6 hex digits with optional leading #", e.Input)
}

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// NewRGBA creates an RGBA value.
func NewRGBA(r, g, b int, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// ToNRGBA converts to the stdlib non-premultiplied color, clamping each
// channel to the representable range.
func (c RGBA) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		R: clampU8(c.R),
		G: clampU8(c.G),
		B: clampU8(c.B),
		A: clampU8(int(math.Round(clamp01(c.A) * 255))),
	}
}

// FromNRGBA converts a stdlib non-premultiplied color to RGBA.
func FromNRGBA(c color.NRGBA) RGBA {
	return RGBA{R: int(c.R), G: int(c.G), B: int(c.B), A: float64(c.A) / 255}
}

// RGBAToHSL converts RGBA to HSL using the standard hue-sector formula.
// When max==min the color is achromatic and hue/saturation are zero.
func RGBAToHSL(c RGBA) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		h = hueFromSectors(r, g, b, maxC, d)
	}

	return HSL{
		H: int(math.Round(h * 360)),
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// HSLToRGBA converts HSL back to RGBA with alpha 1. Round trips through
// RGBAToHSL are within ±1 per channel due to integer quantization.
func HSLToRGBA(c HSL) RGBA {
	h := float64(c.H) / 360
	s := float64(c.S) / 100
	l := float64(c.L) / 100

	if s == 0 {
		v := int(math.Round(l * 255))
		return RGBA{R: v, G: v, B: v, A: 1}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToChannel(p, q, h+1.0/3)
	g := hueToChannel(p, q, h)
	b := hueToChannel(p, q, h-1.0/3)

	return RGBA{
		R: int(math.Round(r * 255)),
		G: int(math.Round(g * 255)),
		B: int(math.Round(b * 255)),
		A: 1,
	}
}

// RGBAToHSV converts RGBA to HSV; the value channel is max(r,g,b)/255.
func RGBAToHSV(c RGBA) HSV {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	d := maxC - minC

	var h, s float64
	if maxC > 0 {
		s = d / maxC
	}
	if d != 0 {
		h = hueFromSectors(r, g, b, maxC, d)
	}

	return HSV{
		H: int(math.Round(h * 360)),
		S: int(math.Round(s * 100)),
		V: int(math.Round(maxC * 100)),
	}
}

// HSVToRGBA converts HSV back to RGBA with alpha 1.
func HSVToRGBA(c HSV) RGBA {
	h := float64(c.H) / 60
	s := float64(c.S) / 100
	v := float64(c.V) / 100

	i := int(math.Floor(h)) % 6
	if i < 0 {
		i += 6
	}
	f := h - math.Floor(h)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return RGBA{
		R: int(math.Round(r * 255)),
		G: int(math.Round(g * 255)),
		B: int(math.Round(b * 255)),
		A: 1,
	}
}

// AdjustBrightness multiplies each RGB channel by factor, clamping to
// [0,255]. Alpha is unchanged. Factor 1 is the identity; values outside
// [0,1] are accepted and only the final channel values are clamped.
func AdjustBrightness(c RGBA, factor float64) RGBA {
	return RGBA{
		R: clampChannel(math.Round(float64(c.R) * factor)),
		G: clampChannel(math.Round(float64(c.G) * factor)),
		B: clampChannel(math.Round(float64(c.B) * factor)),
		A: c.A,
	}
}

// AdjustContrast scales each RGB channel away from the 128 midpoint by
// factor, clamping to [0,255]. Alpha is unchanged.
func AdjustContrast(c RGBA, factor float64) RGBA {
	adj := func(v int) int {
		return clampChannel(math.Round((float64(v)-128)*factor + 128))
	}
	return RGBA{R: adj(c.R), G: adj(c.G), B: adj(c.B), A: c.A}
}

// AdjustSaturation scales the HSL saturation by factor, clamping to
// [0,100]. Alpha is preserved across the conversion.
func AdjustSaturation(c RGBA, factor float64) RGBA {
	hsl := RGBAToHSL(c)
	s := int(math.Round(float64(hsl.S) * factor))
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	hsl.S = s
	out := HSLToRGBA(hsl)
	out.A = c.A
	return out
}

// Blend composites top over bottom with the standard "over" operator.
// The result alpha is clamped to at most 1.
func Blend(bottom, top RGBA) RGBA {
	a := top.A + bottom.A*(1-top.A)
	if a > 1 {
		a = 1
	}
	return RGBA{
		R: int(math.Round(float64(top.R)*top.A + float64(bottom.R)*(1-top.A))),
		G: int(math.Round(float64(top.G)*top.A + float64(bottom.G)*(1-top.A))),
		B: int(math.Round(float64(top.B)*top.A + float64(bottom.B)*(1-top.A))),
		A: a,
	}
}

// Luminance returns the WCAG relative luminance: sRGB channels are
// linearized (threshold 0.03928) and weighted per ITU-R BT.709.
func Luminance(c RGBA) float64 {
	lin := func(v int) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// a value in [1,21].
func ContrastRatio(a, b RGBA) float64 {
	la := Luminance(a)
	lb := Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// RGBAToHex formats the RGB channels as a lowercase "#rrggbb" string.
// Alpha is not encoded.
func RGBAToHex(c RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", clampU8(c.R), clampU8(c.G), clampU8(c.B))
}

// HexToRGBA parses a 6-digit hex color with an optional leading '#',
// case-insensitive. The returned alpha is 1. Anything else fails with
// *ErrInvalidHex.
func HexToRGBA(s string) (RGBA, error) {
	if !hexPattern.MatchString(s) {
		return RGBA{}, &ErrInvalidHex{Input: s}
	}
	digits := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGBA{}, &ErrInvalidHex{Input: s}
	}
	return RGBA{
		R: int(v >> 16 & 0xff),
		G: int(v >> 8 & 0xff),
		B: int(v & 0xff),
		A: 1,
	}, nil
}

// hueFromSectors computes hue in [0,1) from normalized channels.
func hueFromSectors(r, g, b, maxC, d float64) float64 {
	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6
}

// hueToChannel is the standard HSL helper mapping a hue offset to one
// RGB channel in [0,1].
func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clampChannel(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
