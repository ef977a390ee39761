// Package colormap maps normalized scalars to colors.
package colormap

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownTable is returned when a color table name is not registered.
var ErrUnknownTable = errors.New("unknown color table")

// ErrUnknownColor is returned when a color string can't be parsed.
var ErrUnknownColor = errors.New("unknown color")

// RGBA is a color with float channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Transparent is the default color for non-finite values.
var Transparent = RGBA{0, 0, 0, 0}

func fromColorful(c colorful.Color) RGBA {
	c = c.Clamped()
	return RGBA{c.R, c.G, c.B, 1}
}

// Table maps values in [0, 1] to colors. Values below 0 get the under color,
// values above 1 the over color and NaN the bad color.
//
// A Table is an immutable value: the With* methods return modified copies.
type Table struct {
	name   string
	lookup func(t float64) colorful.Color

	under, over, bad          RGBA
	hasUnder, hasOver, hasBad bool
}

// Stop is one color stop of a segmented table.
type Stop struct {
	T float64
	C colorful.Color
}

// NewSegmented builds a table that interpolates linearly in RGB between
// stops. Stops are sorted by T; at least one stop is needed.
func NewSegmented(name string, stops []Stop) Table {
	if len(stops) == 0 {
		panic("colormap: segmented table needs at least one stop")
	}

	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })

	return NewFunc(name, func(t float64) colorful.Color {
		if t <= sorted[0].T {
			return sorted[0].C
		}
		last := len(sorted) - 1
		if t >= sorted[last].T {
			return sorted[last].C
		}
		for i := 0; i < last; i++ {
			a, b := sorted[i], sorted[i+1]
			if t >= a.T && t <= b.T {
				span := b.T - a.T
				if span <= 0 {
					return b.C
				}
				return a.C.BlendRgb(b.C, (t-a.T)/span)
			}
		}
		return sorted[last].C
	})
}

// NewFunc builds a table from a function over [0, 1].
func NewFunc(name string, fn func(t float64) colorful.Color) Table {
	return Table{name: name, lookup: fn}
}

// IsZero reports whether t is the zero Table, which has no colors.
func (t Table) IsZero() bool {
	return t.lookup == nil
}

// Name returns the name the table was registered with.
func (t Table) Name() string {
	return t.name
}

// WithUnder returns a copy of t using c for values below 0.
func (t Table) WithUnder(c RGBA) Table {
	t.under, t.hasUnder = c, true
	return t
}

// WithOver returns a copy of t using c for values above 1.
func (t Table) WithOver(c RGBA) Table {
	t.over, t.hasOver = c, true
	return t
}

// WithBad returns a copy of t using c for non-finite values.
func (t Table) WithBad(c RGBA) Table {
	t.bad, t.hasBad = c, true
	return t
}

// Under returns the color used for values below 0.
func (t Table) Under() RGBA {
	if t.hasUnder {
		return t.under
	}
	return fromColorful(t.lookup(0))
}

// Over returns the color used for values above 1.
func (t Table) Over() RGBA {
	if t.hasOver {
		return t.over
	}
	return fromColorful(t.lookup(1))
}

// Bad returns the color used for NaN and infinite values.
func (t Table) Bad() RGBA {
	if t.hasBad {
		return t.bad
	}
	return Transparent
}

// At looks up a normalized value.
func (t Table) At(v float64) RGBA {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return t.Bad()
	case v < 0:
		return t.Under()
	case v > 1:
		return t.Over()
	}
	return fromColorful(t.lookup(v))
}

var namedColors = map[string]RGBA{
	"none":    Transparent,
	"black":   {0, 0, 0, 1},
	"white":   {1, 1, 1, 1},
	"red":     {1, 0, 0, 1},
	"green":   {0, 0.5, 0, 1},
	"blue":    {0, 0, 1, 1},
	"yellow":  {1, 1, 0, 1},
	"magenta": {1, 0, 1, 1},
	"cyan":    {0, 1, 1, 1},
	"gray":    {0.5, 0.5, 0.5, 1},
}

// ParseColor parses a color name (yellow, magenta, none, ...) or a hex
// string such as "#ff8800".
func ParseColor(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if c, found := namedColors[s]; found {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w %q: %v", ErrUnknownColor, s, err)
		}
		return fromColorful(c), nil
	}

	return RGBA{}, fmt.Errorf("%w %q", ErrUnknownColor, s)
}
