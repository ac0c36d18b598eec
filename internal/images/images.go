// Package images decodes uploaded raster images and prepares them for
// embedding into annex pages.
//
// Accepted formats are PNG, JPEG, BMP and TIFF. Decoded pixels are
// composited over a white background into an opaque RGB image and
// re-encoded as PNG, which is the one format the page canvas always
// accepts. A file that fails to decode is reported back to the caller,
// which skips it and keeps processing the remaining attachments.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Attachment is one uploaded image, already converted for rendering.
// Name keeps the original filename; the annex builder derives the page
// title from it.
type Attachment struct {
	Name   string
	PNG    []byte
	Width  int
	Height int
}

// Decode converts raw uploaded bytes into an Attachment. It returns an
// error for anything that is not a decodable PNG/JPEG/BMP/TIFF; callers
// treat that as a per-image skip, not a failure of the batch.
func Decode(name string, data []byte) (*Attachment, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("decode %s: empty %s image", name, format)
	}

	opaque := flatten(src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, opaque); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}

	return &Attachment{
		Name:   name,
		PNG:    buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// flatten composites src over white, dropping any alpha channel.
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}
