package hillshade

import (
	"fmt"
	"math"

	"github.com/titusjan/hill-shading/internal/grid"
)

// Lamp is a directional light source. Angles are in degrees; azimuth 0 is
// south, 90 east, 180 north and 270 west. Elevation 0 is the horizon and 90
// the zenith.
type Lamp struct {
	Azimuth   float64
	Elevation float64
	Weight    float64
}

// NewLamps zips azimuths, elevations and weights into lamps. A single weight
// is used for every lamp; otherwise all three slices must be equally long.
func NewLamps(azimuths, elevations, weights []float64) ([]Lamp, error) {
	if len(weights) == 1 && len(azimuths) > 1 {
		w := weights[0]
		weights = make([]float64, len(azimuths))
		for i := range weights {
			weights[i] = w
		}
	}

	if len(azimuths) != len(elevations) || len(azimuths) != len(weights) {
		return nil, fmt.Errorf("%w: %d azimuths, %d elevations, %d weights",
			ErrSequenceLength, len(azimuths), len(elevations), len(weights))
	}

	lamps := make([]Lamp, len(azimuths))
	for i := range lamps {
		lamps[i] = Lamp{Azimuth: azimuths[i], Elevation: elevations[i], Weight: weights[i]}
	}
	return lamps, nil
}

// CombinedIntensity lights terrain with every lamp plus ambient light of
// intensity 1 and returns the weighted average of all contributions. Each
// layer counts with weight / sum(weights), so the result stays in [0, 1].
func CombinedIntensity(terrain *grid.Grid, lamps []Lamp, ambientWeight, scale float64) (*grid.Grid, error) {
	total, err := totalWeight(lamps, ambientWeight)
	if err != nil {
		return nil, err
	}

	out := grid.Filled(terrain.Rows, terrain.Cols, ambientWeight/total)
	if len(lamps) == 0 {
		return out, nil
	}

	normals := UnitNormals(terrain, scale)
	for _, lamp := range lamps {
		if lamp.Weight == 0 {
			continue
		}
		share := lamp.Weight / total
		layer := RelativeIntensity(normals, LightDirection(lamp.Azimuth, lamp.Elevation))
		for i, v := range layer.Data {
			out.Data[i] += share * v
		}
	}

	// rounding can push a full-weight sum a hair past 1
	for i, v := range out.Data {
		out.Data[i] = clip01(v)
	}

	return out, nil
}

// CheckWeights returns ErrDegenerateWeights for the lamp and ambient weights
// CombinedIntensity would reject.
func CheckWeights(lamps []Lamp, ambientWeight float64) error {
	_, err := totalWeight(lamps, ambientWeight)
	return err
}

func totalWeight(lamps []Lamp, ambientWeight float64) (float64, error) {
	weights := make([]float64, 0, len(lamps)+1)
	for _, lamp := range lamps {
		weights = append(weights, lamp.Weight)
	}
	weights = append(weights, ambientWeight)

	total := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: weight %v must be finite and non-negative", ErrDegenerateWeights, w)
		}
		total += w
	}

	if total <= 0 {
		return 0, fmt.Errorf("%w: lamp and ambient weights sum to %v", ErrDegenerateWeights, total)
	}
	return total, nil
}
