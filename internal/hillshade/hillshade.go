package hillshade

import (
	"fmt"

	"github.com/titusjan/hill-shading/internal/colormap"
	"github.com/titusjan/hill-shading/internal/grid"
)

// Defaults for the light setup.
const (
	DefaultAzimuth       = 135.0 // degrees
	DefaultElevation     = 45.0  // degrees
	DefaultLampWeight    = 5.0
	DefaultAmbientWeight = 1.0
)

// Options configures HillShade.
type Options struct {
	Lamps         []Lamp
	AmbientWeight float64

	// ScaleTerrain exaggerates (> 1) or flattens (< 1) the terrain slopes.
	ScaleTerrain float64

	// TerrainNaNValue replaces NaN and Inf in the terrain before the normals
	// are computed.
	TerrainNaNValue float64

	ColorTable colormap.Table
	Norm       colormap.Norm
	Blend      Blender
}

// DefaultOptions returns one lamp at azimuth 135 and elevation 45, some
// ambient light, the gist_earth color table and RGB blending.
func DefaultOptions() Options {
	table, err := colormap.ByName(colormap.DefaultTable)
	if err != nil {
		panic(err)
	}

	return Options{
		Lamps: []Lamp{
			{Azimuth: DefaultAzimuth, Elevation: DefaultElevation, Weight: DefaultLampWeight},
		},
		AmbientWeight:   DefaultAmbientWeight,
		ScaleTerrain:    1,
		TerrainNaNValue: 0,
		ColorTable:      table,
		Blend:           RGBBlending,
	}
}

// Intensity sanitizes terrain and returns the combined lamp and ambient
// intensity.
func Intensity(terrain *grid.Grid, opts Options) (*grid.Grid, error) {
	finite := terrain.ReplaceNonFinite(opts.TerrainNaNValue)
	return CombinedIntensity(finite, opts.Lamps, opts.AmbientWeight, opts.ScaleTerrain)
}

// HillShade colors data with the color table and shades it with the light
// falling on terrain. A nil terrain shades data with itself.
//
// NaN values in terrain are replaced by opts.TerrainNaNValue, NaN values in
// data get the bad color of the table.
func HillShade(data, terrain *grid.Grid, opts Options) (*grid.Bands, error) {
	if terrain == nil {
		terrain = data
	}

	if !data.SameShape(terrain) {
		return nil, fmt.Errorf("%w: data is %dx%d, terrain is %dx%d",
			ErrShapeMismatch, data.Rows, data.Cols, terrain.Rows, terrain.Cols)
	}

	intensity, err := Intensity(terrain, opts)
	if err != nil {
		return nil, err
	}

	return ColorData(data, intensity, opts.ColorTable, opts.Norm, opts.Blend)
}

// ColorData colors data and blends it with an intensity computed elsewhere.
func ColorData(data, intensity *grid.Grid, table colormap.Table, norm colormap.Norm, blend Blender) (*grid.Bands, error) {
	if !data.SameShape(intensity) {
		return nil, fmt.Errorf("%w: data is %dx%d, intensity is %dx%d",
			ErrShapeMismatch, data.Rows, data.Cols, intensity.Rows, intensity.Cols)
	}
	if blend == nil {
		blend = RGBBlending
	}
	if table.IsZero() {
		var err error
		if table, err = colormap.ByName(colormap.DefaultTable); err != nil {
			return nil, err
		}
	}

	rgba, err := colormap.Colorize(data, table, norm)
	if err != nil {
		return nil, err
	}

	return blend.Blend(rgba, intensity)
}
