package colormap

import (
	"errors"
	"fmt"
	"math"

	"github.com/titusjan/hill-shading/internal/grid"
)

// ErrInvalidRange is returned when vmin is larger than vmax.
var ErrInvalidRange = errors.New("vmin must be less than or equal to vmax")

// Norm scales data linearly to [0, 1]. A nil bound is taken from the
// finite minimum or maximum of the data.
type Norm struct {
	VMin, VMax *float64
}

// Limits returns the bounds the norm uses for data.
func (n Norm) Limits(data *grid.Grid) (vmin, vmax float64, err error) {
	lo, hi, _ := data.FiniteMinMax()

	vmin, vmax = lo, hi
	if n.VMin != nil {
		vmin = *n.VMin
	}
	if n.VMax != nil {
		vmax = *n.VMax
	}

	if vmin > vmax {
		return 0, 0, fmt.Errorf("%w: vmin=%v vmax=%v", ErrInvalidRange, vmin, vmax)
	}
	return vmin, vmax, nil
}

// Normalize returns a copy of data scaled to [0, 1]. Values outside the
// bounds end up below 0 or above 1, non-finite values stay non-finite.
// If vmin equals vmax every finite value maps to 0.
func (n Norm) Normalize(data *grid.Grid) (*grid.Grid, error) {
	vmin, vmax, err := n.Limits(data)
	if err != nil {
		return nil, err
	}

	out := grid.New(data.Rows, data.Cols)
	span := vmax - vmin

	for i, v := range data.Data {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			out.Data[i] = math.NaN()
		case span == 0:
			out.Data[i] = 0
		default:
			out.Data[i] = (v - vmin) / span
		}
	}

	return out, nil
}

// Colorize normalizes data and looks every value up in table. The result
// has four channels: red, green, blue and alpha.
func Colorize(data *grid.Grid, table Table, norm Norm) (*grid.Bands, error) {
	normalized, err := norm.Normalize(data)
	if err != nil {
		return nil, err
	}

	rgba := grid.NewBands(data.Rows, data.Cols, 4)
	for i, v := range normalized.Data {
		c := table.At(v)
		px := rgba.Data[i*4 : i*4+4]
		px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
	}

	return rgba, nil
}
