package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	src := testImage(64, 48)

	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}

	for format, encode := range encoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))

			att, err := Decode("photo."+format, buf.Bytes())
			require.NoError(t, err)
			require.Equal(t, "photo."+format, att.Name)
			require.Equal(t, 64, att.Width)
			require.Equal(t, 48, att.Height)
			require.NotEmpty(t, att.PNG)
		})
	}
}

func TestDecodeCorruptData(t *testing.T) {
	_, err := Decode("broken.png", []byte("this is not an image"))
	require.Error(t, err)
}

func TestDecodeTruncatedPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(32, 32)))

	_, err := Decode("cut.png", buf.Bytes()[:20])
	require.Error(t, err)
}

func TestDecodeFlattensAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	// fully transparent image: flattening must leave white, not black
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	att, err := Decode("transparent.png", buf.Bytes())
	require.NoError(t, err)

	out, err := png.Decode(bytes.NewReader(att.PNG))
	require.NoError(t, err)
	r, g, b, a := out.At(4, 4).RGBA()
	require.Equal(t, uint32(0xffff), a, "output must be opaque")
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, uint32(0xffff), g)
	require.Equal(t, uint32(0xffff), b)
}

func TestDecodeRejectsUnregisteredFormat(t *testing.T) {
	// GIF is deliberately not an accepted upload format
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x00\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	_, err := Decode("anim.gif", gif)
	require.Error(t, err)
}
