// Package ingest turns uploaded raster bytes into an editable pixel grid:
// validation, decode, aspect-fit letterbox resampling, and cell sampling.
package ingest

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"pixelgrid/internal/grid"
	"pixelgrid/pkg/colorutil"
)

// MaxBytes is the largest accepted file size (10 MiB).
const MaxBytes = 10 << 20

// acceptedMIMETypes are the exactly three raster formats the editor takes.
var acceptedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// AcceptedMIMETypes returns the accepted MIME types in stable order.
func AcceptedMIMETypes() []string {
	return []string{"image/jpeg", "image/png", "image/webp"}
}

// Validate fails fast on an unsupported MIME type or an oversized file,
// before any decode is attempted. No state is touched on failure.
func Validate(name, mimeType string, size int64) error {
	if !acceptedMIMETypes[mimeType] {
		return newError(KindFormat, name, "unsupported file type %q (want JPEG, PNG, or WebP)", mimeType)
	}
	if size > MaxBytes {
		return newError(KindSize, name, "file is %d bytes, maximum is %d", size, MaxBytes)
	}
	return nil
}

// Decode rasterizes the uploaded bytes. The registered decoders are JPEG,
// PNG, and WebP; anything else fails with a decode error.
func Decode(name string, data []byte) (image.Image, error) {
	if int64(len(data)) > MaxBytes {
		return nil, newError(KindSize, name, "file is %d bytes, maximum is %d", len(data), MaxBytes)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindDecode, File: name, Message: "cannot decode image data", Err: err}
	}
	return img, nil
}

// Resample scales the source to fit within targetSize×targetSize preserving
// aspect ratio (scale = min(target/srcW, target/srcH)), centers it, and
// fills the remaining border with fully-transparent pixels. Scaling uses
// nearest-neighbor, which is deterministic for a given input.
func Resample(src image.Image, targetSize int) (*image.NRGBA, error) {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, newError(KindProcessing, "", "source image has no pixels")
	}

	scale := float64(targetSize) / float64(srcW)
	if s := float64(targetSize) / float64(srcH); s < scale {
		scale = s
	}
	scaledW := int(float64(srcW) * scale)
	scaledH := int(float64(srcH) * scale)
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}
	offsetX := (targetSize - scaledW) / 2
	offsetY := (targetSize - scaledH) / 2

	// The zero NRGBA is fully transparent, so the letterbox border needs no
	// explicit fill.
	dst := image.NewNRGBA(image.Rect(0, 0, targetSize, targetSize))
	target := image.Rect(offsetX, offsetY, offsetX+scaledW, offsetY+scaledH)
	draw.NearestNeighbor.Scale(dst, target, src, b, draw.Src, nil)

	return dst, nil
}

// ToGrid samples one color per grid cell from a letterboxed image whose
// dimensions already equal the grid size. Both Color and OriginalColor are
// set to the sampled value with Modified false. Fully-transparent pixels
// become the transparent-white cell sentinel.
func ToGrid(img *image.NRGBA) *grid.Grid {
	size := img.Bounds().Dx()
	colors := make([]colorutil.RGBA, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := img.NRGBAAt(x, y)
			if px.A == 0 {
				colors[y*size+x] = colorutil.Transparent
				continue
			}
			colors[y*size+x] = colorutil.FromNRGBA(px)
		}
	}
	return grid.FromCells(size, colors)
}

// FromBytes runs the full ingestion pipeline: validate, decode, resample to
// targetSize, and sample into a grid. It is all-or-nothing; on any failure
// the caller's prior grid and history are left untouched.
func FromBytes(name, mimeType string, data []byte, targetSize int) (*grid.Grid, error) {
	if err := Validate(name, mimeType, int64(len(data))); err != nil {
		return nil, err
	}
	img, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	letterboxed, err := Resample(img, targetSize)
	if err != nil {
		return nil, err
	}
	return ToGrid(letterboxed), nil
}
