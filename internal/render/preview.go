package render

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

// PreviewPath returns where BuildPreviews writes the preview of the given
// width.
func PreviewPath(dir, name string, size uint) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d.png", name, size))
}

// BuildPreviews writes a copy of img resized to each of sizes pixels wide
// to dir, named <name>_<size>.png. The height keeps the aspect ratio.
// Previews are built concurrently; the first error cancels the rest.
func BuildPreviews(ctx context.Context, img image.Image, dir, name string, sizes []uint) ([]string, error) {
	paths := make([]string, len(sizes))
	g, ctx := errgroup.WithContext(ctx)

	for i, size := range sizes {
		i, size := i, size
		paths[i] = PreviewPath(dir, name, size)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			resized := resize.Resize(size, 0, img, resize.MitchellNetravali)
			if err := SavePNG(paths[i], resized); err != nil {
				return fmt.Errorf("preview %d: %w", size, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
