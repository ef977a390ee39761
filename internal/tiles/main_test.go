package tiles

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/titusjan/hill-shading/internal/config"
	"github.com/titusjan/hill-shading/internal/render"
)

func TestBuild(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Data.Size = 300

	if err := Build(context.Background(), cfg, Options{TerrainRGB: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, layer := range []string{ShadedDir, TerrainRGBDir} {
		dir := filepath.Join(cfg.Output.Dir, layer)

		data, err := os.ReadFile(filepath.Join(dir, "tile.json"))
		if err != nil {
			t.Fatalf("%s: failed to read tile.json: %v", layer, err)
		}
		var tj render.TileJSON
		if err := json.Unmarshal(data, &tj); err != nil {
			t.Fatalf("%s: invalid tile.json: %v", layer, err)
		}
		if tj.Maxzoom != 1 {
			t.Errorf("%s: expected max zoom 1, got %d", layer, tj.Maxzoom)
		}

		for _, tile := range []string{"0/0/0.png", "1/0/0.png", "1/1/1.png"} {
			if _, err := os.Stat(filepath.Join(dir, tile)); err != nil {
				t.Errorf("%s: expected tile %s: %v", layer, tile, err)
			}
		}
	}
}

func TestBuildWithoutTerrainRGB(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Data.Size = 40

	if err := Build(context.Background(), cfg, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Output.Dir, ShadedDir, "0", "0", "0.png")); err != nil {
		t.Errorf("expected a single tile at lod 0: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output.Dir, TerrainRGBDir)); !os.IsNotExist(err) {
		t.Errorf("expected no Terrain-RGB tiles, got %v", err)
	}
}
