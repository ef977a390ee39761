package hillshade

import (
	"fmt"
	"strings"

	"github.com/titusjan/hill-shading/internal/grid"
)

// Blender merges colorized data with a normalized intensity field. The alpha
// channel of rgba, if any, is ignored.
type Blender interface {
	Blend(rgba *grid.Bands, intensity *grid.Grid) (*grid.Bands, error)
}

// BlendMode selects one of the builtin blend algorithms.
type BlendMode int

const (
	// NoBlending returns the intensity alone, useful to inspect the shading.
	NoBlending BlendMode = iota

	// RGBBlending multiplies every color channel with the intensity. It
	// behaves well regardless of the brightness range of the color table.
	RGBBlending

	// HSVBlending puts the intensity in the Value channel of the HSV color.
	// Color tables containing colors close to black or white (cubehelix,
	// hot) give wrong results, because their own brightness variation is
	// overwritten by the intensity.
	HSVBlending

	// PegtopBlending is ImageMagick's "Pegtop Light" soft light composition,
	// 2*I*rgb + rgb^2*(1 - 2*I). Like HSVBlending it leans on the brightness
	// variation of the color table and looks flat on tables such as rainbow.
	PegtopBlending
)

var blendModeNames = map[BlendMode]string{
	NoBlending:     "none",
	RGBBlending:    "rgb",
	HSVBlending:    "hsv",
	PegtopBlending: "pegtop",
}

// BlendModes lists all modes in declaration order.
func BlendModes() []BlendMode {
	return []BlendMode{NoBlending, RGBBlending, HSVBlending, PegtopBlending}
}

func (m BlendMode) String() string {
	if name, found := blendModeNames[m]; found {
		return name
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode parses the names returned by String.
func ParseBlendMode(s string) (BlendMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range blendModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownBlendMode, s)
}

// Blend implements Blender.
func (m BlendMode) Blend(rgba *grid.Bands, intensity *grid.Grid) (*grid.Bands, error) {
	if m == NoBlending {
		return grid.BandsFromGrid(intensity), nil
	}

	if !rgba.SameShape(intensity) {
		return nil, fmt.Errorf("%w: colors are %dx%d, intensity is %dx%d",
			ErrShapeMismatch, rgba.Rows, rgba.Cols, intensity.Rows, intensity.Cols)
	}
	if rgba.Channels < 3 {
		return nil, fmt.Errorf("blend %s: need at least 3 color channels, got %d", m, rgba.Channels)
	}

	var pixel func(rgb []float64, i float64, out []float64)
	switch m {
	case RGBBlending:
		pixel = rgbPixel
	case HSVBlending:
		pixel = hsvPixel
	case PegtopBlending:
		pixel = pegtopPixel
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlendMode, m)
	}

	out := grid.NewBands(rgba.Rows, rgba.Cols, 3)
	for i, v := range intensity.Data {
		src := rgba.Data[i*rgba.Channels : i*rgba.Channels+3]
		pixel(src, v, out.Data[i*3:i*3+3])
	}

	return out, nil
}

func rgbPixel(rgb []float64, i float64, out []float64) {
	for ch := 0; ch < 3; ch++ {
		out[ch] = rgb[ch] * i
	}
}

func hsvPixel(rgb []float64, i float64, out []float64) {
	h, s, _ := RGBToHSV(rgb[0], rgb[1], rgb[2])
	out[0], out[1], out[2] = HSVToRGB(h, s, i)
}

func pegtopPixel(rgb []float64, i float64, out []float64) {
	for ch := 0; ch < 3; ch++ {
		c := rgb[ch]
		out[ch] = 2*i*c + c*c*(1-2*i)
	}
}
