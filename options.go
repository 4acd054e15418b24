package kerf

import (
	"github.com/tsawler/kerf/flatten"
	"github.com/tsawler/kerf/transform"
)

// JobOptions holds the configuration of one generation pass: the bed
// geometry, machine-origin convention, unit symbol, offsets, scale, and
// curve-approximation tolerance.
type JobOptions struct {
	bed       transform.Bed
	origin    transform.Origin
	offsetX   float64
	offsetY   float64
	scale     float64
	tolerance float64
}

// defaultOptions returns the default generation options: a bottom-left
// machine origin, millimeter labels, unit scale, and no offsets. The bed
// size has no useful default and is set by the caller.
func defaultOptions() JobOptions {
	return JobOptions{
		bed:       transform.Bed{Unit: "mm"},
		origin:    transform.OriginBottomLeft,
		scale:     1.0,
		tolerance: flatten.DefaultTolerance,
	}
}

// clone creates a copy of JobOptions. All fields are value types, so a
// plain copy suffices.
func (o JobOptions) clone() JobOptions {
	return o
}
