package grid

// Gradient returns the derivatives of g along the rows and along the
// columns. Interior cells use central differences, the outermost cells
// one-sided differences. An axis of length 1 has a derivative of 0.
func (g *Grid) Gradient() (dr, dc *Grid) {
	dr = New(g.Rows, g.Cols)
	dc = New(g.Rows, g.Cols)

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			dr.Data[r*g.Cols+c] = axisDiff(g.Rows, r, func(i int) float64 { return g.Data[i*g.Cols+c] })
			dc.Data[r*g.Cols+c] = axisDiff(g.Cols, c, func(i int) float64 { return g.Data[r*g.Cols+i] })
		}
	}

	return dr, dc
}

// axisDiff differentiates along one axis of length n at position i.
func axisDiff(n, i int, at func(int) float64) float64 {
	switch {
	case n < 2:
		return 0
	case i == 0:
		return at(1) - at(0)
	case i == n-1:
		return at(n-1) - at(n-2)
	default:
		return (at(i+1) - at(i-1)) / 2
	}
}
