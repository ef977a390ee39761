package colormap

import (
	"fmt"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "gist_earth"

func hexStops(hexes map[float64]string) []Stop {
	stops := make([]Stop, 0, len(hexes))
	for t, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops = append(stops, Stop{T: t, C: c})
	}
	return stops
}

// gistEarth follows the look of matplotlib's gist_earth: deep blue through
// green and tan to white.
func gistEarth() Table {
	return NewSegmented("gist_earth", hexStops(map[float64]string{
		0.0: "#000000",
		0.1: "#1c2c7a",
		0.2: "#2d6085",
		0.3: "#3a8571",
		0.4: "#4b995b",
		0.5: "#6aa653",
		0.6: "#8fb15a",
		0.7: "#b0b163",
		0.8: "#bb9b73",
		0.9: "#d7b8a9",
		1.0: "#fdfbfb",
	}))
}

func gray() Table {
	return NewFunc("gray", func(t float64) colorful.Color {
		return colorful.Color{R: t, G: t, B: t}
	})
}

func bwr() Table {
	return NewSegmented("bwr", []Stop{
		{0, colorful.Color{R: 0, G: 0, B: 1}},
		{0.5, colorful.Color{R: 1, G: 1, B: 1}},
		{1, colorful.Color{R: 1, G: 0, B: 0}},
	})
}

func hot() Table {
	return NewSegmented("hot", []Stop{
		{0, colorful.Color{R: 0.0416, G: 0, B: 0}},
		{0.365079, colorful.Color{R: 1, G: 0, B: 0}},
		{0.746032, colorful.Color{R: 1, G: 1, B: 0}},
		{1, colorful.Color{R: 1, G: 1, B: 1}},
	})
}

// rainbow has almost no variation in brightness, which makes it a poor
// partner for the hsv and pegtop blend modes.
func rainbow() Table {
	return NewFunc("rainbow", func(t float64) colorful.Color {
		return colorful.Color{
			R: math.Abs(2*t - 0.5),
			G: math.Sin(math.Pi * t),
			B: math.Cos(math.Pi * t / 2),
		}.Clamped()
	})
}

func cool() Table {
	return NewFunc("cool", func(t float64) colorful.Color {
		return colorful.Color{R: t, G: 1 - t, B: 1}
	})
}

// cubehelix is D.A. Green's scheme with gamma 1, start 0.5, rotations -1.5
// and hue 1. It runs from black to white, so hsv blending misbehaves on it.
func cubehelix() Table {
	const (
		gamma = 1.0
		start = 0.5
		rot   = -1.5
		hue   = 1.0
	)
	channel := func(p0, p1 float64) func(float64) float64 {
		return func(x float64) float64 {
			xg := math.Pow(x, gamma)
			a := hue * xg * (1 - xg) / 2
			phi := 2 * math.Pi * (start/3 + rot*x)
			return xg + a*(p0*math.Cos(phi)+p1*math.Sin(phi))
		}
	}
	r := channel(-0.14861, 1.78277)
	g := channel(-0.29227, -0.90649)
	b := channel(1.97294, 0.0)

	return NewFunc("cubehelix", func(t float64) colorful.Color {
		return colorful.Color{R: r(t), G: g(t), B: b(t)}.Clamped()
	})
}

var builtins = map[string]func() Table{
	"gist_earth": gistEarth,
	"gray":       gray,
	"bwr":        bwr,
	"hot":        hot,
	"rainbow":    rainbow,
	"cool":       cool,
	"cubehelix":  cubehelix,
}

// ByName returns a fresh copy of a builtin table.
func ByName(name string) (Table, error) {
	build, found := builtins[name]
	if !found {
		return Table{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownTable, name, Names())
	}
	return build(), nil
}

// Names lists the builtin tables in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
