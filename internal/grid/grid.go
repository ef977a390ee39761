// Package grid holds the row-major rasters the shading pipeline works on.
package grid

import (
	"fmt"
	"math"
)

// Grid is a 2D raster of rows x cols values stored row-major:
// Data[r*Cols + c].
type Grid struct {
	Rows, Cols int
	Data       []float64
}

// New returns a zero filled grid.
func New(rows, cols int) *Grid {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: negative shape %dx%d", rows, cols))
	}
	return &Grid{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// Filled returns a grid with every cell set to v.
func Filled(rows, cols int, v float64) *Grid {
	g := New(rows, cols)
	for i := range g.Data {
		g.Data[i] = v
	}
	return g
}

// FromRows copies a slice of equally long rows into a new grid.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}

	cols := len(rows[0])
	g := New(len(rows), cols)

	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d values, expected %d", r, len(row), cols)
		}
		copy(g.Data[r*cols:(r+1)*cols], row)
	}

	return g, nil
}

// Shape returns the dimensions of the grid.
func (g *Grid) Shape() (rows, cols int) {
	return g.Rows, g.Cols
}

// SameShape reports whether both grids have the same dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.Rows == o.Rows && g.Cols == o.Cols
}

// At returns the value at (r, c).
// It will panic if r or c are out of bounds for the grid.
func (g *Grid) At(r, c int) float64 {
	return g.Data[g.index(r, c)]
}

// Set stores v at (r, c).
func (g *Grid) Set(r, c int, v float64) {
	g.Data[g.index(r, c)] = v
}

func (g *Grid) index(r, c int) int {
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Cols {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range for %dx%d", r, c, g.Rows, g.Cols))
	}
	return r*g.Cols + c
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{Rows: g.Rows, Cols: g.Cols, Data: make([]float64, len(g.Data))}
	copy(out.Data, g.Data)
	return out
}

// Scale returns a copy with every value multiplied by f.
func (g *Grid) Scale(f float64) *Grid {
	out := g.Clone()
	for i := range out.Data {
		out.Data[i] *= f
	}
	return out
}

// ReplaceNonFinite returns a copy of the grid in which NaN and +/-Inf are
// replaced by fallback. The receiver is left untouched.
func (g *Grid) ReplaceNonFinite(fallback float64) *Grid {
	out := g.Clone()
	for i, v := range out.Data {
		if !isFinite(v) {
			out.Data[i] = fallback
		}
	}
	return out
}

// HasNonFinite reports whether any cell holds NaN or +/-Inf.
func (g *Grid) HasNonFinite() bool {
	for _, v := range g.Data {
		if !isFinite(v) {
			return true
		}
	}
	return false
}

// FiniteMinMax returns the smallest and largest finite value. ok is false if
// the grid holds no finite value at all.
func (g *Grid) FiniteMinMax() (min, max float64, ok bool) {
	min = math.Inf(1)
	max = math.Inf(-1)

	for _, v := range g.Data {
		if !isFinite(v) {
			continue
		}
		ok = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
