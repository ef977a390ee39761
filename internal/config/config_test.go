package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/titusjan/hill-shading/internal/colormap"
	"github.com/titusjan/hill-shading/internal/hillshade"
	"github.com/titusjan/hill-shading/internal/terrain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to be valid, got %v", err)
	}

	if len(cfg.Shade.Azimuths) != 1 || cfg.Shade.Azimuths[0] != 135 {
		t.Errorf("expected azimuths [135], got %v", cfg.Shade.Azimuths)
	}
	if len(cfg.Shade.Elevations) != 1 || cfg.Shade.Elevations[0] != 45 {
		t.Errorf("expected elevations [45], got %v", cfg.Shade.Elevations)
	}
	if cfg.Shade.Blend != "rgb" {
		t.Errorf("expected blend rgb, got %s", cfg.Shade.Blend)
	}
	if cfg.Shade.ColorTable != colormap.DefaultTable {
		t.Errorf("expected color table %s, got %s", colormap.DefaultTable, cfg.Shade.ColorTable)
	}
	if cfg.Data.Shape != terrain.Hills || cfg.Data.Size != 200 {
		t.Errorf("expected 200 cells of hills, got %d cells of %s", cfg.Data.Size, cfg.Data.Shape)
	}
	if cfg.Terrain != nil {
		t.Error("expected no separate terrain by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
shade:
  azimuths: [90, 270]
  elevations: [30, 60]
  lamp_weights: [2]
  blend: hsv
  color_table: bwr
  vmin: -2.5
  bad_color: yellow

data:
  shape: circles
  size: 64

terrain:
  shape: hills
  size: 64

output:
  dir: /tmp/shaded
  origin_lower: false

logging:
  level: debug
`)

	cfg, err := loadFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	if len(cfg.Shade.Azimuths) != 2 || cfg.Shade.Azimuths[1] != 270 {
		t.Errorf("expected azimuths [90 270], got %v", cfg.Shade.Azimuths)
	}
	if cfg.Shade.Blend != "hsv" {
		t.Errorf("expected blend hsv, got %s", cfg.Shade.Blend)
	}
	if cfg.Shade.VMin == nil || *cfg.Shade.VMin != -2.5 {
		t.Errorf("expected vmin -2.5, got %v", cfg.Shade.VMin)
	}
	if cfg.Shade.VMax != nil {
		t.Errorf("expected vmax unset, got %v", *cfg.Shade.VMax)
	}
	if cfg.Data.Shape != terrain.Circles || cfg.Data.Size != 64 {
		t.Errorf("expected 64 cells of circles, got %d cells of %s", cfg.Data.Size, cfg.Data.Shape)
	}

	// values not in the file keep their defaults
	if cfg.Shade.AmbientWeight != hillshade.DefaultAmbientWeight {
		t.Errorf("expected ambient weight %v, got %v", hillshade.DefaultAmbientWeight, cfg.Shade.AmbientWeight)
	}
	if cfg.Data.Multiplier != 1 {
		t.Errorf("expected data multiplier 1, got %v", cfg.Data.Multiplier)
	}
	if cfg.Terrain == nil {
		t.Fatal("expected a terrain section")
	}
	if cfg.Terrain.Multiplier != 1 || cfg.Terrain.NoiseFactor != 0.05 {
		t.Errorf("expected default multiplier and noise for terrain, got %v and %v",
			cfg.Terrain.Multiplier, cfg.Terrain.NoiseFactor)
	}
	if cfg.Output.Dir != "/tmp/shaded" || cfg.Output.OriginLower {
		t.Errorf("unexpected output section: %+v", cfg.Output)
	}
	if len(cfg.Output.PreviewSizes) != 3 {
		t.Errorf("expected default preview sizes, got %v", cfg.Output.PreviewSizes)
	}
}

// loadFile reads defaults overridden by the YAML file at path.
func loadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := loadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "shade: [not, a, map")
	if _, err := loadFile(path); err == nil {
		t.Error("expected error for invalid yaml, got nil")
	}
}

func TestLoadWithFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := writeConfig(t, `
shade:
  ambient_weight: 3
  blend: hsv
data:
  size: 80
`)

	fs := flag.NewFlagSet("shade", flag.ContinueOnError)
	f := RegisterFlags(fs)
	err := fs.Parse([]string{
		"-config", path,
		"-blend", "pegtop",
		"-azimuths", "90, 180",
		"-elevations", "30,60",
		"-weights", "4",
		"-vmin", "-1",
		"-terrain", "circles",
		"-size", "40",
		"-debug",
	})
	if err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Shade.Blend != "pegtop" {
		t.Errorf("expected flag to override blend, got %s", cfg.Shade.Blend)
	}
	if cfg.Shade.AmbientWeight != 3 {
		t.Errorf("expected ambient weight from file, got %v", cfg.Shade.AmbientWeight)
	}
	if len(cfg.Shade.Azimuths) != 2 || cfg.Shade.Azimuths[0] != 90 || cfg.Shade.Azimuths[1] != 180 {
		t.Errorf("expected azimuths [90 180], got %v", cfg.Shade.Azimuths)
	}
	if cfg.Shade.VMin == nil || *cfg.Shade.VMin != -1 {
		t.Errorf("expected vmin -1, got %v", cfg.Shade.VMin)
	}
	if cfg.Terrain == nil || cfg.Terrain.Shape != terrain.Circles {
		t.Fatalf("expected circles terrain, got %+v", cfg.Terrain)
	}
	if cfg.Data.Size != 40 || cfg.Terrain.Size != 40 {
		t.Errorf("expected size 40 for data and terrain, got %d and %d", cfg.Data.Size, cfg.Terrain.Size)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug logging, got %s", cfg.Logging.Level)
	}

	opts, err := cfg.ShadeOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts.Lamps) != 2 || opts.Lamps[1].Weight != 4 {
		t.Errorf("expected two lamps of weight 4, got %+v", opts.Lamps)
	}
}

func TestLoadRejectsInvalidFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	fs := flag.NewFlagSet("shade", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-azimuths", "0,90", "-config", writeConfig(t, "")}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	// two azimuths against the single default elevation
	_, err := Load(f)
	if !errors.Is(err, ErrInvalid) || !errors.Is(err, hillshade.ErrSequenceLength) {
		t.Errorf("expected ErrInvalid wrapping ErrSequenceLength, got %v", err)
	}
}

func TestFloatListFlag(t *testing.T) {
	var l floatList
	if err := l.Set("1, 2.5,-3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l) != 3 || l[1] != 2.5 || l[2] != -3 {
		t.Errorf("expected [1 2.5 -3], got %v", l)
	}
	if l.String() != "1,2.5,-3" {
		t.Errorf("expected 1,2.5,-3, got %s", l.String())
	}
	if err := l.Set("1,east"); err == nil {
		t.Error("expected error for non numeric value, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		target error
	}{
		{"unknown blend", func(c *Config) { c.Shade.Blend = "overlay" }, hillshade.ErrUnknownBlendMode},
		{"unknown table", func(c *Config) { c.Shade.ColorTable = "viridis" }, colormap.ErrUnknownTable},
		{"unknown color", func(c *Config) { c.Shade.BadColor = "chartreuse" }, colormap.ErrUnknownColor},
		{"lamp lengths", func(c *Config) { c.Shade.Azimuths = []float64{1, 2, 3} }, hillshade.ErrSequenceLength},
		{"zero weights", func(c *Config) {
			c.Shade.LampWeights = []float64{0}
			c.Shade.AmbientWeight = 0
		}, hillshade.ErrDegenerateWeights},
		{"negative ambient", func(c *Config) { c.Shade.AmbientWeight = -1 }, hillshade.ErrDegenerateWeights},
		{"unknown shape", func(c *Config) { c.Data.Shape = "volcano" }, terrain.ErrUnknownShape},
		{"terrain size", func(c *Config) {
			t := DefaultSurface()
			t.Size = 10
			c.Terrain = &t
		}, hillshade.ErrShapeMismatch},
		{"vmin above vmax", func(c *Config) {
			lo, hi := 2.0, 1.0
			c.Shade.VMin, c.Shade.VMax = &lo, &hi
		}, colormap.ErrInvalidRange},
		{"size", func(c *Config) { c.Data.Size = 0 }, ErrInvalid},
		{"preview size", func(c *Config) { c.Output.PreviewSizes = []uint{64, 0} }, ErrInvalid},
		{"empty dir", func(c *Config) { c.Output.Dir = "" }, ErrInvalid},
		{"log level", func(c *Config) { c.Logging.Level = "chatty" }, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestShadeTable(t *testing.T) {
	s := Default().Shade
	s.ColorTable = "gray"
	s.BadColor = "yellow"
	s.UnderColor = "#0000ff"
	s.OverColor = "magenta"

	table, err := s.Table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Bad() != (colormap.RGBA{R: 1, G: 1, B: 0, A: 1}) {
		t.Errorf("expected yellow bad color, got %+v", table.Bad())
	}
	if table.Under() != (colormap.RGBA{R: 0, G: 0, B: 1, A: 1}) {
		t.Errorf("expected blue under color, got %+v", table.Under())
	}
	if table.Over() != (colormap.RGBA{R: 1, G: 0, B: 1, A: 1}) {
		t.Errorf("expected magenta over color, got %+v", table.Over())
	}
}

func TestSurfaces(t *testing.T) {
	cfg := Default()
	cfg.Data.Size = 20
	cfg.Data.NoiseFactor = 0

	data, terr, err := cfg.Surfaces()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if terr != nil {
		t.Error("expected nil terrain without a terrain section")
	}
	if data.Rows != 20 || data.Cols != 20 {
		t.Errorf("expected 20x20 data, got %dx%d", data.Rows, data.Cols)
	}

	tc := cfg.Data
	tc.Multiplier = -2
	cfg.Terrain = &tc

	data, terr, err = cfg.Surfaces()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range data.Data {
		if terr.Data[i] != -2*data.Data[i] {
			t.Fatalf("cell %d: expected %v, got %v", i, -2*data.Data[i], terr.Data[i])
		}
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	vmax := 7.5
	cfg.Shade.VMax = &vmax
	cfg.Shade.Blend = "pegtop"
	terr := DefaultSurface()
	terr.Shape = terrain.Circles
	cfg.Terrain = &terr

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := loadFile(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Shade.Blend != "pegtop" {
		t.Errorf("expected blend pegtop, got %s", loaded.Shade.Blend)
	}
	if loaded.Shade.VMax == nil || *loaded.Shade.VMax != 7.5 {
		t.Errorf("expected vmax 7.5, got %v", loaded.Shade.VMax)
	}
	if loaded.Shade.VMin != nil {
		t.Errorf("expected vmin unset, got %v", *loaded.Shade.VMin)
	}
	if loaded.Terrain == nil || *loaded.Terrain != terr {
		t.Errorf("expected terrain %+v, got %+v", terr, loaded.Terrain)
	}
}
