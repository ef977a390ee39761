// Package hillshade computes shaded relief: the light falling on a height
// field, combined with colorized data.
package hillshade

import (
	"fmt"
	"math"

	"github.com/titusjan/hill-shading/internal/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// NormalField holds one unit surface normal per cell. The vector components
// are X: height, Y: row direction, Z: column direction.
type NormalField struct {
	Rows, Cols int
	Vecs       []r3.Vec
}

// At returns the normal of cell (r, c).
func (n NormalField) At(r, c int) r3.Vec {
	return n.Vecs[r*n.Cols+c]
}

// UnitNormals returns the unit surface normals of terrain. The gradients are
// multiplied by scale before use, so a larger scale exaggerates the slopes.
//
// terrain must be finite; UnitNormals panics on NaN or Inf.
func UnitNormals(terrain *grid.Grid, scale float64) NormalField {
	dr, dc := terrain.Gradient()

	normals := NormalField{
		Rows: terrain.Rows,
		Cols: terrain.Cols,
		Vecs: make([]r3.Vec, len(terrain.Data)),
	}

	for i := range terrain.Data {
		r := dr.Data[i] * scale
		c := dc.Data[i] * scale
		if math.IsNaN(r) || math.IsNaN(c) || math.IsInf(r, 0) || math.IsInf(c, 0) {
			panic(fmt.Sprintf("hillshade: non-finite gradient at cell %d, sanitize the terrain first", i))
		}

		// a step of 1 along the rows rises by r, a step of 1 along the
		// columns by c. The "1" components keep both tangents independent.
		vr := r3.Vec{X: r, Y: 1, Z: 0}
		vc := r3.Vec{X: c, Y: 0, Z: 1}

		normals.Vecs[i] = r3.Unit(r3.Cross(vr, vc))
	}

	return normals
}
