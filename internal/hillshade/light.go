package hillshade

import (
	"fmt"
	"math"

	"github.com/titusjan/hill-shading/internal/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// cosTolerance is the rounding slack allowed on a cosine before it is
// considered out of range.
const cosTolerance = 1e-9

func deg2rad(deg float64) float64 { return deg * math.Pi / 180.0 }

// LightDirection converts the polar direction of a lamp to a unit vector in
// (height, row, col) coordinates.
func LightDirection(azimuth, elevation float64) r3.Vec {
	az := deg2rad(azimuth)
	el := deg2rad(elevation)

	return r3.Vec{
		X: math.Sin(el),
		Y: math.Cos(el) * math.Sin(az),
		Z: math.Cos(el) * math.Cos(az),
	}
}

// RelativeIntensity returns, per cell, the fraction of a unit light that
// falls on the surface: cos(theta) with theta the angle between the normal
// and the light. Cells facing away from the light receive nothing, so the
// result is clipped to [0, 1].
func RelativeIntensity(normals NormalField, light r3.Vec) *grid.Grid {
	out := grid.New(normals.Rows, normals.Cols)

	for i, n := range normals.Vecs {
		cos := r3.Dot(n, light)
		if cos < -1-cosTolerance || cos > 1+cosTolerance {
			panic(fmt.Sprintf("hillshade: cos(theta) = %v out of [-1, 1] at cell %d", cos, i))
		}
		out.Data[i] = clip01(cos)
	}

	return out
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
