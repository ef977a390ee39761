package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// floatList is a comma separated list of numbers on the command line.
type floatList []float64

func (l *floatList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(s string) error {
	var out floatList
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", part)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Flags are the command line overrides shared by the subcommands. Only the
// flags given on the command line override the config.
type Flags struct {
	fs *flag.FlagSet

	config     string
	out        string
	debug      bool
	logFile    string
	blend      string
	colorTable string
	azimuths   floatList
	elevations floatList
	weights    floatList
	ambient    float64
	scale      float64
	vmin       float64
	vmax       float64
	shape      string
	terrain    string
	size       int
	noise      float64
	seed       int64
	stl        bool
}

// RegisterFlags registers the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.StringVar(&f.out, "out", "", "Output directory")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.logFile, "log", "", "Also log to this file")
	fs.StringVar(&f.blend, "blend", "", "Blend mode: none, rgb, hsv or pegtop")
	fs.StringVar(&f.colorTable, "cmap", "", "Color table name")
	fs.Var(&f.azimuths, "azimuths", "Comma separated lamp azimuths in degrees")
	fs.Var(&f.elevations, "elevations", "Comma separated lamp elevations in degrees")
	fs.Var(&f.weights, "weights", "Comma separated lamp weights, one weight applies to all lamps")
	fs.Float64Var(&f.ambient, "ambient", 0, "Ambient light weight")
	fs.Float64Var(&f.scale, "scale", 0, "Terrain exaggeration factor")
	fs.Float64Var(&f.vmin, "vmin", 0, "Data value mapped to the start of the color table")
	fs.Float64Var(&f.vmax, "vmax", 0, "Data value mapped to the end of the color table")
	fs.StringVar(&f.shape, "shape", "", "Data surface: circles or hills")
	fs.StringVar(&f.terrain, "terrain", "", "Terrain surface, the data shades itself if unset")
	fs.IntVar(&f.size, "size", 0, "Surface size in cells")
	fs.Float64Var(&f.noise, "noise", 0, "Noise factor of the surfaces")
	fs.Int64Var(&f.seed, "seed", 0, "Noise seed")
	fs.BoolVar(&f.stl, "stl", false, "Also write the terrain as an STL mesh")

	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.config
}

// apply applies the flags set on the command line to cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil || f.fs == nil {
		return
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "out":
			cfg.Output.Dir = f.out
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "log":
			cfg.Logging.LogFile = f.logFile
		case "blend":
			cfg.Shade.Blend = f.blend
		case "cmap":
			cfg.Shade.ColorTable = f.colorTable
		case "azimuths":
			cfg.Shade.Azimuths = f.azimuths
		case "elevations":
			cfg.Shade.Elevations = f.elevations
		case "weights":
			cfg.Shade.LampWeights = f.weights
		case "ambient":
			cfg.Shade.AmbientWeight = f.ambient
		case "scale":
			cfg.Shade.ScaleTerrain = f.scale
		case "vmin":
			v := f.vmin
			cfg.Shade.VMin = &v
		case "vmax":
			v := f.vmax
			cfg.Shade.VMax = &v
		case "stl":
			cfg.Output.STL = f.stl
		case "shape":
			cfg.Data.Shape = f.shape
		case "terrain":
			if cfg.Terrain == nil {
				t := cfg.Data
				cfg.Terrain = &t
			}
			cfg.Terrain.Shape = f.terrain
		}
	})

	// surface settings apply to the terrain too, so they go after -terrain
	f.fs.Visit(func(fl *flag.Flag) {
		for _, s := range []*SurfaceConfig{&cfg.Data, cfg.Terrain} {
			if s == nil {
				continue
			}
			switch fl.Name {
			case "size":
				s.Size = f.size
			case "noise":
				s.NoiseFactor = f.noise
			case "seed":
				s.Seed = f.seed
			}
		}
	})
}
