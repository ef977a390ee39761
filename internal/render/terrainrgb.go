package render

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/titusjan/hill-shading/internal/grid"
	"golang.org/x/sync/errgroup"
)

/*
	Terrain-RGB stores a height in the 24 bits of a pixel:

	height = -10000 + (R * 256 * 256 + G * 256 + B) * 0.1

	Solved for the 24 bit number x this is x = 10 * height + 100000, and R, G
	and B are the base 256 digits of x.
*/

const maxTerrainRGB = 1<<24 - 1

// HeightToRGB encodes height as a Terrain-RGB color. Heights outside the
// representable range are clamped and NaN encodes as height 0.
func HeightToRGB(height float64) color.NRGBA {
	if math.IsNaN(height) {
		height = 0
	}

	x := math.Round(10*height + 100000)
	x = math.Max(0, math.Min(maxTerrainRGB, x))
	n := uint32(x)

	return color.NRGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 255,
	}
}

// RGBToHeight decodes a Terrain-RGB color.
func RGBToHeight(c color.NRGBA) float64 {
	x := int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)

	return -10000 + float64(x)*0.1
}

// TerrainRGBImage encodes every cell of g as a Terrain-RGB pixel.
func TerrainRGBImage(g *grid.Grid, originLower bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows))

	for r := 0; r < g.Rows; r++ {
		y := r
		if originLower {
			y = g.Rows - 1 - r
		}
		for c := 0; c < g.Cols; c++ {
			img.SetNRGBA(c, y, HeightToRGB(g.At(r, c)))
		}
	}

	return img
}

// BuildTerrainRGBPyramid writes Terrain-RGB tiles of the heights in g for
// every zoom level up to maxLod. The tiles follow the same layout as
// BuildTilePyramid on an image of g.
func BuildTerrainRGBPyramid(ctx context.Context, maxLod uint8, g *grid.Grid, originLower bool, dir string) error {
	heights := g
	if originLower {
		heights = flipRows(g)
	}

	eg, ctx := errgroup.WithContext(ctx)

	for lod := uint8(0); lod <= maxLod; lod++ {
		lod := lod
		eg.Go(func() error {
			return BuildTerrainRGBTileSet(ctx, lod, heights, dir)
		})
	}

	return eg.Wait()
}

// BuildTerrainRGBTileSet writes the Terrain-RGB tiles of one zoom level.
// Grid row 0 is the top of the tiles. The heights are averaged down to the
// tile resolution before encoding, since the encoded bytes are base 256
// digits and blending them gives wrong heights.
func BuildTerrainRGBTileSet(ctx context.Context, lod uint8, g *grid.Grid, dir string) error {
	rects, err := tileRects(image.Rect(0, 0, g.Cols, g.Rows), lod)
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)

	for _, tr := range rects {
		tr := tr
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			tile := TerrainRGBImage(averageHeights(g, tr.rect, TileSize), false)
			return SavePNG(TilePath(dir, tr.tile), tile)
		})
	}

	return eg.Wait()
}

// averageHeights resamples the cells of g inside rect (x = column, y = row)
// to size x size cells. Every output cell is the mean of the finite heights
// it covers, or the nearest cell when rect is smaller than size. NaN marks
// cells that cover no finite height.
func averageHeights(g *grid.Grid, rect image.Rectangle, size int) *grid.Grid {
	out := grid.New(size, size)
	w, h := rect.Dx(), rect.Dy()

	for py := 0; py < size; py++ {
		r0 := rect.Min.Y + py*h/size
		r1 := max(r0+1, rect.Min.Y+(py+1)*h/size)

		for px := 0; px < size; px++ {
			c0 := rect.Min.X + px*w/size
			c1 := max(c0+1, rect.Min.X+(px+1)*w/size)

			sum, n := 0.0, 0
			for r := r0; r < r1; r++ {
				for c := c0; c < c1; c++ {
					if v := g.At(r, c); !math.IsNaN(v) && !math.IsInf(v, 0) {
						sum += v
						n++
					}
				}
			}

			if n == 0 {
				out.Set(py, px, math.NaN())
			} else {
				out.Set(py, px, sum/float64(n))
			}
		}
	}

	return out
}

func flipRows(g *grid.Grid) *grid.Grid {
	out := grid.New(g.Rows, g.Cols)
	for r := 0; r < g.Rows; r++ {
		copy(out.Data[r*g.Cols:(r+1)*g.Cols], g.Data[(g.Rows-1-r)*g.Cols:(g.Rows-r)*g.Cols])
	}
	return out
}
