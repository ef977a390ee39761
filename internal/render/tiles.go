package render

import (
	"context"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"runtime"

	"github.com/nfnt/resize"
	"github.com/paulmach/orb/maptile"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TileSize is the width and height of a tile in pixels.
const TileSize = 256

// CalcMaxLod returns the lowest zoom level at which the tiles of img are
// no larger than the image itself.
func CalcMaxLod(img image.Image) uint8 {
	w := float64(max(img.Bounds().Dx(), img.Bounds().Dy()))
	if w <= TileSize {
		return 0
	}

	tilesPerRowCol := math.Ceil(w / TileSize)

	return uint8(math.Ceil(math.Log2(tilesPerRowCol)))
}

// TilePath returns the location of a tile below dir: <z>/<x>/<y>.png.
func TilePath(dir string, t maptile.Tile) string {
	return filepath.Join(dir, fmt.Sprint(t.Z), fmt.Sprint(t.X), fmt.Sprintf("%d.png", t.Y))
}

// BuildTilePyramid builds the tile sets of all zoom levels up to maxLod.
func BuildTilePyramid(ctx context.Context, maxLod uint8, img *image.NRGBA, dir string) error {
	g, ctx := errgroup.WithContext(ctx)

	for lod := uint8(0); lod <= maxLod; lod++ {
		lod := lod
		g.Go(func() error {
			return BuildTileSet(ctx, lod, img, dir)
		})
	}

	return g.Wait()
}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// BuildTileSet cuts img into 2^lod x 2^lod tiles of TileSize pixels and
// writes them below dir. When the image size is not a multiple of the tile
// count, the remaining pixels go to the first rows and columns. An axis with
// fewer pixels than tiles repeats its last pixel in the surplus tiles.
func BuildTileSet(ctx context.Context, lod uint8, img *image.NRGBA, dir string) error {
	rects, err := tileRects(img.Bounds(), lod)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, tr := range rects {
		tr := tr
		g.Go(func() error {
			return createTile(ctx, img, tr.rect, TilePath(dir, tr.tile))
		})
	}

	return g.Wait()
}

type tileRect struct {
	tile maptile.Tile
	rect image.Rectangle
}

// tileRects splits bounds into the 2^lod x 2^lod tiles of a zoom level.
func tileRects(bounds image.Rectangle, lod uint8) ([]tileRect, error) {
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot cut an empty image %v into tiles", bounds)
	}

	tilesPerRowCol := 1 << lod
	cols := splitAxis(bounds.Min.X, bounds.Dx(), tilesPerRowCol)
	rows := splitAxis(bounds.Min.Y, bounds.Dy(), tilesPerRowCol)

	rects := make([]tileRect, 0, tilesPerRowCol*tilesPerRowCol)
	for col, x := range cols {
		for row, y := range rows {
			rects = append(rects, tileRect{
				tile: maptile.New(uint32(col), uint32(row), maptile.Zoom(lod)),
				rect: image.Rect(x[0], y[0], x[1], y[1]),
			})
		}
	}
	return rects, nil
}

// splitAxis cuts length pixels from start into n spans of [from, to). The
// remaining pixels go to the first spans, and spans past the last pixel
// reuse it so that no span is empty. length must be positive.
func splitAxis(start, length, n int) [][2]int {
	spans := make([][2]int, n)
	size, remainder := length/n, length%n

	from := start
	for i := range spans {
		w := size
		if i < remainder {
			w++
		}
		if w == 0 {
			last := start + length - 1
			spans[i] = [2]int{last, last + 1}
			continue
		}
		spans[i] = [2]int{from, from + w}
		from += w
	}
	return spans
}

func createTile(ctx context.Context, img *image.NRGBA, rect image.Rectangle, tilePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)

	tile := resize.Resize(TileSize, TileSize, img.SubImage(rect), resize.MitchellNetravali)

	return SavePNG(tilePath, tile)
}
