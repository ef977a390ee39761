// Package render turns shaded grids into images and writes them as PNG
// files, previews and tile pyramids.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/titusjan/hill-shading/internal/grid"
)

// ToImage converts bands with values in [0, 1] to an image. One or two
// channels render as gray, three or more as RGB, and a fourth channel is
// used as alpha. Values outside [0, 1] are clipped and NaN becomes 0.
//
// With originLower the first grid row becomes the bottom line of the image.
func ToImage(b *grid.Bands, originLower bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Cols, b.Rows))

	for r := 0; r < b.Rows; r++ {
		y := r
		if originLower {
			y = b.Rows - 1 - r
		}

		for c := 0; c < b.Cols; c++ {
			px := b.Pixel(r, c)

			var col color.NRGBA
			if b.Channels < 3 {
				v := toByte(px[0])
				col = color.NRGBA{R: v, G: v, B: v, A: 255}
			} else {
				col = color.NRGBA{R: toByte(px[0]), G: toByte(px[1]), B: toByte(px[2]), A: 255}
			}
			if b.Channels >= 4 {
				col.A = toByte(px[3])
			}

			img.SetNRGBA(c, y, col)
		}
	}

	return img
}

func toByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(v * 255))
}
