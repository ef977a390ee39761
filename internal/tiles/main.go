// Package tiles implements the tiles subcommand, which cuts the shaded image
// into an XYZ tile pyramid.
package tiles

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/titusjan/hill-shading/internal/config"
	"github.com/titusjan/hill-shading/internal/logger"
	"github.com/titusjan/hill-shading/internal/render"
	"github.com/titusjan/hill-shading/internal/shade"
	"go.uber.org/zap"
)

// Directories below the output directory.
const (
	ShadedDir     = "tiles"
	TerrainRGBDir = "terrain-rgb"
)

// Options tunes Build.
type Options struct {
	// TerrainRGB also writes the terrain heights as Terrain-RGB tiles.
	TerrainRGB bool
}

// Run is the entrypoint of the tiles subcommand.
func Run(flagSet *flag.FlagSet) {
	start := time.Now()

	terrainRGBPtr := flagSet.Bool("terrainrgb", false, "Also build Terrain-RGB tiles of the terrain")

	cfg := config.Setup(flagSet, config.RegisterFlags(flagSet))
	defer logger.Sync()

	if err := Build(context.Background(), cfg, Options{TerrainRGB: *terrainRGBPtr}); err != nil {
		logger.Fatal("❌  Building tiles failed", zap.Error(err))
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

// Build renders the configured surfaces and writes the tile pyramid with its
// tile.json below the output directory.
func Build(ctx context.Context, cfg *config.Config, opts Options) error {
	rendered, err := shade.Render(cfg)
	if err != nil {
		return err
	}

	maxLod := render.CalcMaxLod(rendered.Image)
	logger.Sugar.Infof("ℹ️  Calculated max lod: %d", maxLod)

	dir := filepath.Join(cfg.Output.Dir, ShadedDir)
	err = buildPyramid("shaded relief", maxLod, dir, func() error {
		return render.BuildTilePyramid(ctx, maxLod, rendered.Image, dir)
	})
	if err != nil || !opts.TerrainRGB {
		return err
	}

	dir = filepath.Join(cfg.Output.Dir, TerrainRGBDir)
	return buildPyramid("Terrain-RGB", maxLod, dir, func() error {
		return render.BuildTerrainRGBPyramid(ctx, maxLod, rendered.Terrain, cfg.Output.OriginLower, dir)
	})
}

func buildPyramid(layer string, maxLod uint8, dir string, build func() error) error {
	timer := time.Now()
	logger.Info("▶️  Building tiles", zap.String("layer", layer))
	if err := build(); err != nil {
		return fmt.Errorf("building %s tiles: %w", layer, err)
	}
	logger.Info("✔️  Built tiles", zap.String("layer", layer), zap.String("dir", dir), zap.Duration("took", time.Since(timer)))

	meta := render.TileMeta{
		Name:        fmt.Sprintf("Hill shading %s tiles", layer),
		Description: fmt.Sprintf("%s tiles of a synthetic surface", layer),
	}
	return render.WriteTileJSON(dir, maxLod, meta)
}
