package hillshade

import "errors"

var (
	// ErrShapeMismatch is returned when two rasters that must line up don't.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrSequenceLength is returned when azimuths, elevations and lamp
	// weights have different lengths.
	ErrSequenceLength = errors.New("azimuths, elevations and lamp weights differ in length")

	// ErrDegenerateWeights is returned when the lamp and ambient weights
	// can't form a weighted average.
	ErrDegenerateWeights = errors.New("degenerate light weights")

	// ErrUnknownBlendMode is returned by ParseBlendMode.
	ErrUnknownBlendMode = errors.New("unknown blend mode")
)
