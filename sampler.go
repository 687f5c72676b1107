package imgvault

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// decodeImage rasterizes raw bytes using the registered decoders
// (jpeg/png/gif plus webp and bmp via x/image).
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

// lumaGrid scales img to w×h with bilinear interpolation and returns the
// per-pixel luma in row-major order.
//
// The luma formula is load-bearing: stored corpus hashes were produced with
// exactly round(0.299R + 0.587G + 0.114B), so any change here silently
// invalidates every archived fingerprint.
func lumaGrid(img image.Image, w, h int) []uint8 {
	small := resize.Resize(uint(w), uint(h), img, resize.Bilinear)

	grid := make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			// RGBA returns 16-bit channels; hashes are defined over 8-bit.
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			grid = append(grid, uint8(math.Round(lum)))
		}
	}
	return grid
}

// meanThresholdBits binarizes a luma grid against its arithmetic mean:
// bit i is '1' iff grid[i] is strictly above the mean. Used for both the
// 32×32 pHash and the 8×8 aHash.
func meanThresholdBits(grid []uint8) string {
	var sum int
	for _, v := range grid {
		sum += int(v)
	}
	mean := float64(sum) / float64(len(grid))

	bits := make([]byte, len(grid))
	for i, v := range grid {
		if float64(v) > mean {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
	}
	return string(bits)
}

// gradientBits binarizes a w×h luma grid by horizontal comparison: for each
// row, bit j is '1' iff cell j is darker than its right-hand neighbor.
// A 9×8 grid yields the canonical 64-bit dHash.
func gradientBits(grid []uint8, w, h int) string {
	bits := make([]byte, 0, (w-1)*h)
	for y := 0; y < h; y++ {
		row := grid[y*w : (y+1)*w]
		for x := 0; x < w-1; x++ {
			if row[x] < row[x+1] {
				bits = append(bits, '1')
			} else {
				bits = append(bits, '0')
			}
		}
	}
	return string(bits)
}
