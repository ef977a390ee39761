package grid

import "fmt"

// Bands is a raster with several channels per cell, stored row-major with
// the channels interleaved: Data[(r*Cols + c)*Channels + ch].
type Bands struct {
	Rows, Cols, Channels int
	Data                 []float64
}

// NewBands returns zero filled bands.
func NewBands(rows, cols, channels int) *Bands {
	if rows < 0 || cols < 0 || channels < 1 {
		panic(fmt.Sprintf("grid: invalid band shape %dx%dx%d", rows, cols, channels))
	}
	return &Bands{
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
		Data:     make([]float64, rows*cols*channels),
	}
}

// BandsFromGrid wraps a copy of g as a single channel raster.
func BandsFromGrid(g *Grid) *Bands {
	b := NewBands(g.Rows, g.Cols, 1)
	copy(b.Data, g.Data)
	return b
}

// Pixel returns the channels of the cell at (r, c). The returned slice
// aliases the band data.
func (b *Bands) Pixel(r, c int) []float64 {
	if r < 0 || r >= b.Rows || c < 0 || c >= b.Cols {
		panic(fmt.Sprintf("grid: pixel (%d, %d) out of range for %dx%d", r, c, b.Rows, b.Cols))
	}
	i := (r*b.Cols + c) * b.Channels
	return b.Data[i : i+b.Channels]
}

// At returns a single channel value.
func (b *Bands) At(r, c, ch int) float64 {
	return b.Pixel(r, c)[ch]
}

// Set stores a single channel value.
func (b *Bands) Set(r, c, ch int, v float64) {
	b.Pixel(r, c)[ch] = v
}

// Channel extracts one channel as a grid.
func (b *Bands) Channel(ch int) *Grid {
	if ch < 0 || ch >= b.Channels {
		panic(fmt.Sprintf("grid: channel %d out of range, have %d", ch, b.Channels))
	}
	g := New(b.Rows, b.Cols)
	for i := range g.Data {
		g.Data[i] = b.Data[i*b.Channels+ch]
	}
	return g
}

// SameShape reports whether the bands cover the same rows and cols as g.
func (b *Bands) SameShape(g *Grid) bool {
	return b.Rows == g.Rows && b.Cols == g.Cols
}
