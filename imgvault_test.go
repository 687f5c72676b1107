package imgvault

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// testImage builds an RGBA image whose pixel (x, y) is produced by fill.
func testImage(w, h int, fill func(x, y int) color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}
	return img
}

// testPNG encodes a generated image to PNG bytes.
func testPNG(t *testing.T, w, h int, fill func(x, y int) color.RGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h, fill)); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// solid returns a fill function for a uniform color.
func solid(c color.RGBA) func(x, y int) color.RGBA {
	return func(int, int) color.RGBA { return c }
}

// hGradient shades pixels left (dark) to right (bright).
func hGradient(w int) func(x, y int) color.RGBA {
	return func(x, _ int) color.RGBA {
		v := uint8(x * 255 / (w - 1))
		return color.RGBA{v, v, v, 255}
	}
}

// flipBits returns a copy of hash with its first n bits inverted.
func flipBits(hash string, n int) string {
	b := []byte(hash)
	for i := 0; i < n; i++ {
		if b[i] == '0' {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// zeroBits returns an all-zero bitstring of length n.
func zeroBits(n int) string {
	return strings.Repeat("0", n)
}
