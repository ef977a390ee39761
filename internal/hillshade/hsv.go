package hillshade

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBToHSV converts an RGB triple in [0, 1] to hue in degrees [0, 360),
// saturation and value in [0, 1].
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	return colorful.Color{R: r, G: g, B: b}.Hsv()
}

// HSVToRGB is the inverse of RGBToHSV.
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	// colorful.Hsv has no sector for a hue of exactly 360
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, s, v)
	return c.R, c.G, c.B
}
