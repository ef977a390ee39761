// Package shade implements the shade subcommand, which renders the shaded
// data as a PNG image and a set of previews.
package shade

import (
	"context"
	"flag"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/titusjan/hill-shading/internal/config"
	"github.com/titusjan/hill-shading/internal/grid"
	"github.com/titusjan/hill-shading/internal/hillshade"
	"github.com/titusjan/hill-shading/internal/logger"
	"github.com/titusjan/hill-shading/internal/render"
	"go.uber.org/zap"
)

// ImageName is the base name of the images written by Shade.
const ImageName = "hillshade"

// Run is the entrypoint of the shade subcommand.
func Run(flagSet *flag.FlagSet) {
	start := time.Now()

	cfg := config.Setup(flagSet, config.RegisterFlags(flagSet))
	defer logger.Sync()

	if _, err := Shade(context.Background(), cfg); err != nil {
		logger.Fatal("❌  Shading failed", zap.Error(err))
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

// Rendered is a shaded image together with the surfaces it was made from.
type Rendered struct {
	Image *image.NRGBA
	Data  *grid.Grid

	// Terrain is the surface that was lit, the data itself when the config
	// has no separate terrain.
	Terrain *grid.Grid
}

// Shade renders the configured surfaces and writes hillshade.png and its
// previews to the output directory. It returns the written paths.
func Shade(ctx context.Context, cfg *config.Config) ([]string, error) {
	rendered, err := Render(cfg)
	if err != nil {
		return nil, err
	}

	timer := time.Now()
	path := filepath.Join(cfg.Output.Dir, ImageName+".png")
	if err := render.SavePNG(path, rendered.Image); err != nil {
		return nil, err
	}
	logger.Info("✔️  Wrote image", zap.String("path", path), zap.Duration("took", time.Since(timer)))

	timer = time.Now()
	previews, err := render.BuildPreviews(ctx, rendered.Image, cfg.Output.Dir, ImageName, cfg.Output.PreviewSizes)
	if err != nil {
		return nil, err
	}
	logger.Info("✔️  Built previews", zap.Uints("sizes", cfg.Output.PreviewSizes), zap.Duration("took", time.Since(timer)))

	paths := append([]string{path}, previews...)

	if cfg.Output.STL {
		meshPath, err := saveMesh(cfg, rendered.Terrain)
		if err != nil {
			return nil, err
		}
		paths = append(paths, meshPath)
	}

	return paths, nil
}

func saveMesh(cfg *config.Config, terrain *grid.Grid) (string, error) {
	timer := time.Now()

	path := filepath.Join(cfg.Output.Dir, "terrain.stl")
	finite := terrain.ReplaceNonFinite(cfg.Shade.TerrainNaNValue)
	if err := render.SaveSTL(path, finite, cfg.Shade.ScaleTerrain); err != nil {
		return "", err
	}
	logger.Info("✔️  Wrote mesh", zap.String("path", path), zap.Duration("took", time.Since(timer)))

	return path, nil
}

// Render generates the configured surfaces and shades them.
func Render(cfg *config.Config) (*Rendered, error) {
	timer := time.Now()
	data, terrain, err := cfg.Surfaces()
	if err != nil {
		return nil, err
	}
	logger.Info("✔️  Generated surfaces",
		zap.String("data", cfg.Data.Shape),
		zap.Bool("self_shaded", terrain == nil),
		zap.Int("size", cfg.Data.Size),
		zap.Duration("took", time.Since(timer)))

	opts, err := cfg.ShadeOptions()
	if err != nil {
		return nil, err
	}

	timer = time.Now()
	shaded, err := hillshade.HillShade(data, terrain, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("✔️  Shaded surface",
		zap.String("blend", cfg.Shade.Blend),
		zap.String("color_table", opts.ColorTable.Name()),
		zap.Int("lamps", len(opts.Lamps)),
		zap.Duration("took", time.Since(timer)))

	if terrain == nil {
		terrain = data
	}

	return &Rendered{
		Image:   render.ToImage(shaded, cfg.Output.OriginLower),
		Data:    data,
		Terrain: terrain,
	}, nil
}
