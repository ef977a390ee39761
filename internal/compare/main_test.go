package compare

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/titusjan/hill-shading/internal/config"
	"github.com/titusjan/hill-shading/internal/hillshade"
	"github.com/titusjan/hill-shading/internal/logger"
)

func TestCompare(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Data.Size = 30

	paths, err := Compare(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		IntensityPath(cfg.Output.Dir, Diffuse),
		IntensityPath(cfg.Output.Dir, SlopeAspect),
		IntensityPath(cfg.Output.Dir, SlopeAspectNormalized),
	}
	for _, mode := range hillshade.BlendModes() {
		expected = append(expected, BlendPath(cfg.Output.Dir, mode))
	}

	if len(paths) != len(expected) {
		t.Errorf("expected %d images, got %d", len(expected), len(paths))
	}
	for _, path := range expected {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s: %v", path, err)
		}
	}
}

func TestCompareWarnsAboutExtraLamps(t *testing.T) {
	var buf bytes.Buffer
	if err := logger.InitWithWriter("info", logger.FileConfig{}, &buf); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer logger.InitWithWriter("info", logger.FileConfig{}, nil)

	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Data.Size = 10
	cfg.Shade.Azimuths = []float64{315, 45}
	cfg.Shade.Elevations = []float64{45, 30}

	if _, err := Compare(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Sync()

	if !strings.Contains(buf.String(), "uses only the first lamp") {
		t.Errorf("expected a warning about the extra lamp, got %q", buf.String())
	}
}

func TestCompareWithoutLamps(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Data.Size = 10
	cfg.Shade.Azimuths = nil
	cfg.Shade.Elevations = nil
	cfg.Shade.LampWeights = nil

	if _, err := Compare(context.Background(), cfg); !errors.Is(err, ErrNoLamp) {
		t.Errorf("expected ErrNoLamp, got %v", err)
	}
}

func TestCompareCanceled(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Data.Size = 10

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Compare(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
