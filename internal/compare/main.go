// Package compare implements the compare subcommand. It renders the same
// surfaces once per blend mode and once per intensity model so the results
// can be put side by side.
package compare

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/titusjan/hill-shading/internal/config"
	"github.com/titusjan/hill-shading/internal/grid"
	"github.com/titusjan/hill-shading/internal/hillshade"
	"github.com/titusjan/hill-shading/internal/logger"
	"github.com/titusjan/hill-shading/internal/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Intensity model names.
const (
	Diffuse               = "diffuse"
	SlopeAspect           = "slope_aspect"
	SlopeAspectNormalized = "slope_aspect_normalized"
)

// ErrNoLamp is returned when the slope and aspect model has no lamp to use.
var ErrNoLamp = errors.New("slope and aspect intensity needs at least one lamp")

// Run is the entrypoint of the compare subcommand.
func Run(flagSet *flag.FlagSet) {
	start := time.Now()

	cfg := config.Setup(flagSet, config.RegisterFlags(flagSet))
	defer logger.Sync()

	if _, err := Compare(context.Background(), cfg); err != nil {
		logger.Fatal("❌  Comparing failed", zap.Error(err))
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

// BlendPath returns where Compare writes the image of a blend mode.
func BlendPath(dir string, mode hillshade.BlendMode) string {
	return filepath.Join(dir, fmt.Sprintf("blend_%s.png", mode))
}

// IntensityPath returns where Compare writes the image of an intensity model.
func IntensityPath(dir, model string) string {
	return filepath.Join(dir, fmt.Sprintf("intensity_%s.png", model))
}

// Compare writes one image per blend mode and one gray image per intensity
// model to the output directory and returns the written paths.
func Compare(ctx context.Context, cfg *config.Config) ([]string, error) {
	data, terrain, err := cfg.Surfaces()
	if err != nil {
		return nil, err
	}
	if terrain == nil {
		terrain = data
	}

	opts, err := cfg.ShadeOptions()
	if err != nil {
		return nil, err
	}
	if len(opts.Lamps) == 0 {
		return nil, ErrNoLamp
	}

	timer := time.Now()
	intensity, err := hillshade.Intensity(terrain, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("✔️  Calculated intensity", zap.Int("lamps", len(opts.Lamps)), zap.Duration("took", time.Since(timer)))

	images := map[string]*grid.Bands{}

	for _, mode := range hillshade.BlendModes() {
		shaded, err := hillshade.ColorData(data, intensity, opts.ColorTable, opts.Norm, mode)
		if err != nil {
			return nil, fmt.Errorf("blending %s: %w", mode, err)
		}
		images[BlendPath(cfg.Output.Dir, mode)] = shaded
	}

	// the slope and aspect model only knows about a single lamp
	if len(opts.Lamps) > 1 {
		logger.Warn("⚠️  Slope and aspect intensity uses only the first lamp", zap.Int("lamps", len(opts.Lamps)))
	}
	finite := terrain.ReplaceNonFinite(opts.TerrainNaNValue)
	lamp := opts.Lamps[0]
	models := map[string]*grid.Grid{
		Diffuse:               intensity,
		SlopeAspect:           hillshade.SlopeAspectIntensity(finite, lamp, hillshade.SlopeAspectOptions{Scale: opts.ScaleTerrain}),
		SlopeAspectNormalized: hillshade.SlopeAspectIntensity(finite, lamp, hillshade.SlopeAspectOptions{Scale: opts.ScaleTerrain, Normalize: true}),
	}
	for model, g := range models {
		images[IntensityPath(cfg.Output.Dir, model)] = grid.BandsFromGrid(g)
	}

	timer = time.Now()
	g, ctx := errgroup.WithContext(ctx)
	paths := make([]string, 0, len(images))

	for path, bands := range images {
		path, bands := path, bands
		paths = append(paths, path)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return render.SavePNG(path, render.ToImage(bands, cfg.Output.OriginLower))
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	logger.Info("✔️  Wrote comparison images", zap.Int("images", len(paths)), zap.String("dir", cfg.Output.Dir), zap.Duration("took", time.Since(timer)))

	return paths, nil
}
