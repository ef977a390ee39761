// Package config handles loading and validating the hillshade settings.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/titusjan/hill-shading/internal/colormap"
	"github.com/titusjan/hill-shading/internal/grid"
	"github.com/titusjan/hill-shading/internal/hillshade"
	"github.com/titusjan/hill-shading/internal/logger"
	"github.com/titusjan/hill-shading/internal/terrain"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings of a hillshade run.
type Config struct {
	Shade   ShadeConfig    `yaml:"shade"`
	Data    SurfaceConfig  `yaml:"data"`
	Terrain *SurfaceConfig `yaml:"terrain,omitempty"` // nil shades the data with itself
	Output  OutputConfig   `yaml:"output"`
	Logging LoggingConfig  `yaml:"logging"`
}

// ShadeConfig holds the light setup and the coloring of the data.
type ShadeConfig struct {
	Azimuths        []float64 `yaml:"azimuths"`
	Elevations      []float64 `yaml:"elevations"`
	LampWeights     []float64 `yaml:"lamp_weights"`
	AmbientWeight   float64   `yaml:"ambient_weight"`
	ScaleTerrain    float64   `yaml:"scale_terrain"`
	TerrainNaNValue float64   `yaml:"terrain_nan_value"`
	Blend           string    `yaml:"blend"`
	ColorTable      string    `yaml:"color_table"`
	VMin            *float64  `yaml:"vmin,omitempty"`
	VMax            *float64  `yaml:"vmax,omitempty"`
	BadColor        string    `yaml:"bad_color,omitempty"`
	UnderColor      string    `yaml:"under_color,omitempty"`
	OverColor       string    `yaml:"over_color,omitempty"`
}

// SurfaceConfig describes a synthetic surface.
type SurfaceConfig struct {
	Shape       string  `yaml:"shape"`
	Size        int     `yaml:"size"`
	NoiseFactor float64 `yaml:"noise_factor"`
	Multiplier  float64 `yaml:"multiplier"`
	Seed        int64   `yaml:"seed"`
}

// OutputConfig holds where and how images are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	PreviewSizes []uint `yaml:"preview_sizes"`
	OriginLower  bool   `yaml:"origin_lower"`

	// STL also writes the terrain as a triangle mesh, heights scaled by
	// shade.scale_terrain.
	STL bool `yaml:"stl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config that shades noisy hills with one lamp.
func Default() *Config {
	return &Config{
		Shade: ShadeConfig{
			Azimuths:      []float64{hillshade.DefaultAzimuth},
			Elevations:    []float64{hillshade.DefaultElevation},
			LampWeights:   []float64{hillshade.DefaultLampWeight},
			AmbientWeight: hillshade.DefaultAmbientWeight,
			ScaleTerrain:  1,
			Blend:         hillshade.RGBBlending.String(),
			ColorTable:    colormap.DefaultTable,
		},
		Data: DefaultSurface(),
		Output: OutputConfig{
			Dir:          "out",
			PreviewSizes: []uint{128, 256, 512},
			OriginLower:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultSurface returns noisy hills of 200x200 cells.
func DefaultSurface() SurfaceConfig {
	return SurfaceConfig{
		Shape:       terrain.Hills,
		Size:        200,
		NoiseFactor: 0.05,
		Multiplier:  1,
		Seed:        1,
	}
}

// UnmarshalYAML fills the fields missing from a new section, such as a
// terrain section that only names its shape, with the DefaultSurface values.
func (s *SurfaceConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain SurfaceConfig

	p := plain(*s)
	if *s == (SurfaceConfig{}) {
		p = plain(DefaultSurface())
	}
	if err := value.Decode(&p); err != nil {
		return err
	}

	*s = SurfaceConfig(p)
	return nil
}

// Validate checks the config and returns the first problem it finds.
func (c *Config) Validate() error {
	if _, err := c.ShadeOptions(); err != nil {
		return fmt.Errorf("%w: shade: %w", ErrInvalid, err)
	}
	if math.IsNaN(c.Shade.ScaleTerrain) || math.IsInf(c.Shade.ScaleTerrain, 0) {
		return fmt.Errorf("%w: shade.scale_terrain must be finite, got %v", ErrInvalid, c.Shade.ScaleTerrain)
	}
	if c.Shade.VMin != nil && c.Shade.VMax != nil && *c.Shade.VMin > *c.Shade.VMax {
		return fmt.Errorf("%w: shade: %w: vmin=%v vmax=%v", ErrInvalid, colormap.ErrInvalidRange, *c.Shade.VMin, *c.Shade.VMax)
	}

	if err := c.Data.validate(); err != nil {
		return fmt.Errorf("%w: data: %w", ErrInvalid, err)
	}
	if c.Terrain != nil {
		if err := c.Terrain.validate(); err != nil {
			return fmt.Errorf("%w: terrain: %w", ErrInvalid, err)
		}
		if c.Terrain.Size != c.Data.Size {
			return fmt.Errorf("%w: %w: data size %d, terrain size %d",
				ErrInvalid, hillshade.ErrShapeMismatch, c.Data.Size, c.Terrain.Size)
		}
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir is empty", ErrInvalid)
	}
	for _, size := range c.Output.PreviewSizes {
		if size == 0 {
			return fmt.Errorf("%w: output.preview_sizes contains 0", ErrInvalid)
		}
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalid, err)
	}

	return nil
}

func (s SurfaceConfig) validate() error {
	if s.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", s.Size)
	}
	if math.IsNaN(s.Multiplier) || math.IsInf(s.Multiplier, 0) {
		return fmt.Errorf("multiplier must be finite, got %v", s.Multiplier)
	}
	for _, shape := range terrain.Shapes() {
		if shape == s.Shape {
			return nil
		}
	}
	return fmt.Errorf("%w %q", terrain.ErrUnknownShape, s.Shape)
}

// Generate builds the surface described by s.
func (s SurfaceConfig) Generate() (*grid.Grid, error) {
	g, err := terrain.Generate(s.Shape, s.Size, s.NoiseFactor, s.Seed)
	if err != nil {
		return nil, err
	}
	if s.Multiplier == 1 {
		return g, nil
	}
	return g.Scale(s.Multiplier), nil
}

// Surfaces generates the data and the terrain. The terrain is nil when the
// config has none, which makes the data shade itself.
func (c *Config) Surfaces() (data, terrain *grid.Grid, err error) {
	if data, err = c.Data.Generate(); err != nil {
		return nil, nil, fmt.Errorf("generating data: %w", err)
	}
	if c.Terrain == nil {
		return data, nil, nil
	}
	if terrain, err = c.Terrain.Generate(); err != nil {
		return nil, nil, fmt.Errorf("generating terrain: %w", err)
	}
	return data, terrain, nil
}

// ShadeOptions converts the shade section into pipeline options.
func (c *Config) ShadeOptions() (hillshade.Options, error) {
	s := c.Shade

	lamps, err := hillshade.NewLamps(s.Azimuths, s.Elevations, s.LampWeights)
	if err != nil {
		return hillshade.Options{}, err
	}
	if err := hillshade.CheckWeights(lamps, s.AmbientWeight); err != nil {
		return hillshade.Options{}, err
	}

	blend, err := hillshade.ParseBlendMode(s.Blend)
	if err != nil {
		return hillshade.Options{}, err
	}

	table, err := s.Table()
	if err != nil {
		return hillshade.Options{}, err
	}

	return hillshade.Options{
		Lamps:           lamps,
		AmbientWeight:   s.AmbientWeight,
		ScaleTerrain:    s.ScaleTerrain,
		TerrainNaNValue: s.TerrainNaNValue,
		ColorTable:      table,
		Norm:            colormap.Norm{VMin: s.VMin, VMax: s.VMax},
		Blend:           blend,
	}, nil
}

// Table looks up the color table and applies the configured special colors.
func (s ShadeConfig) Table() (colormap.Table, error) {
	table, err := colormap.ByName(s.ColorTable)
	if err != nil {
		return colormap.Table{}, err
	}

	if s.BadColor != "" {
		c, err := colormap.ParseColor(s.BadColor)
		if err != nil {
			return colormap.Table{}, fmt.Errorf("bad_color: %w", err)
		}
		table = table.WithBad(c)
	}
	if s.UnderColor != "" {
		c, err := colormap.ParseColor(s.UnderColor)
		if err != nil {
			return colormap.Table{}, fmt.Errorf("under_color: %w", err)
		}
		table = table.WithUnder(c)
	}
	if s.OverColor != "" {
		c, err := colormap.ParseColor(s.OverColor)
		if err != nil {
			return colormap.Table{}, fmt.Errorf("over_color: %w", err)
		}
		table = table.WithOver(c)
	}

	return table, nil
}
