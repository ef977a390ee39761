package hillshade

import (
	"fmt"
	"math"

	"github.com/titusjan/hill-shading/internal/grid"
)

// SlopeAspectOptions tunes SlopeAspectIntensity.
type SlopeAspectOptions struct {
	// Scale multiplies the gradients, like the scale of UnitNormals.
	Scale float64

	// AzimuthZeroIsEast computes the aspect as atan2(dc, dr) instead of
	// atan2(dr, dc), which turns azimuth 0 from south to east.
	AzimuthZeroIsEast bool

	// Normalize stretches the result to the full [0, 1] range instead of
	// clipping negative values to 0.
	Normalize bool
}

// SlopeAspectIntensity computes the light falling on terrain from slope and
// aspect angles, the way matplotlib's LightSource does. It is kept next to
// the normal vector model so both can be compared.
func SlopeAspectIntensity(terrain *grid.Grid, lamp Lamp, opts SlopeAspectOptions) *grid.Grid {
	az := deg2rad(lamp.Azimuth)
	alt := deg2rad(lamp.Elevation)

	dr, dc := terrain.Gradient()
	out := grid.New(terrain.Rows, terrain.Cols)

	for i := range out.Data {
		dx := dr.Data[i] * opts.Scale
		dy := dc.Data[i] * opts.Scale

		slope := 0.5*math.Pi - math.Atan(math.Hypot(dx, dy))

		var aspect float64
		if opts.AzimuthZeroIsEast {
			aspect = math.Atan2(dy, dx)
		} else {
			aspect = math.Atan2(dx, dy)
		}

		v := math.Sin(alt)*math.Sin(slope) + math.Cos(alt)*math.Cos(slope)*math.Cos(-az-aspect-0.5*math.Pi)
		if v < -1-cosTolerance || v > 1+cosTolerance {
			panic(fmt.Sprintf("hillshade: cos(theta) = %v out of [-1, 1] at cell %d", v, i))
		}
		out.Data[i] = v
	}

	if opts.Normalize {
		if lo, hi, ok := out.FiniteMinMax(); ok && hi > lo {
			for i, v := range out.Data {
				out.Data[i] = (v - lo) / (hi - lo)
			}
			return out
		}
	}

	for i, v := range out.Data {
		out.Data[i] = clip01(v)
	}
	return out
}
