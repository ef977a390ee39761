// Package terrain generates synthetic surfaces to shade.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/titusjan/hill-shading/internal/grid"
)

// ErrUnknownShape is returned for a shape name Generate doesn't know.
var ErrUnknownShape = errors.New("unknown terrain shape")

// Shape names understood by Generate.
const (
	Circles = "circles"
	Hills   = "hills"
)

// Shapes lists the shape names understood by Generate.
func Shapes() []string {
	return []string{Circles, Hills}
}

// Generate returns a size x size surface of the given shape with
// noise * N(0, 1) added to every cell. The noise is drawn from a source
// seeded with seed, so equal arguments give equal surfaces.
func Generate(shape string, size int, noise float64, seed int64) (*grid.Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("terrain size must be at least 1, got %d", size)
	}

	var g *grid.Grid
	switch shape {
	case Circles:
		g = concentricCircles(size)
	case Hills:
		g = hills(size)
	default:
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownShape, shape, Shapes())
	}

	if noise != 0 {
		rnd := rand.New(rand.NewSource(seed))
		for i := range g.Data {
			g.Data[i] += noise * rnd.NormFloat64()
		}
	}

	return g, nil
}

// concentricCircles is sqrt(x^2 + y^2) + sin(x^2 + y^2) on [-5, 5]^2.
func concentricCircles(size int) *grid.Grid {
	axis := linspace(-5, 5, size)
	g := grid.New(size, size)

	for r, y := range axis {
		for c, x := range axis {
			d2 := x*x + y*y
			g.Set(r, c, math.Sqrt(d2)+math.Sin(d2))
		}
	}
	return g
}

// hills is the difference of two gaussian bumps on [-3, 3)^2, one round dip
// and one elongated hill, scaled to roughly the height of the circles.
func hills(size int) *grid.Grid {
	delta := 6.0 / float64(size)
	g := grid.New(size, size)

	for r := 0; r < size; r++ {
		y := -3 + float64(r)*delta
		for c := 0; c < size; c++ {
			x := -3 + float64(c)*delta

			z1 := math.Exp(-(x*x+y*y)/2) / (2 * math.Pi)
			dx := (x - 1) / 1.5
			dy := (y - 1) / 0.5
			z2 := math.Exp(-(dx*dx+dy*dy)/2) / (2 * math.Pi * 0.5 * 1.5)

			g.Set(r, c, -0.1*500*(z2-z1))
		}
	}
	return g
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
