// Package ultrank ranks survey spreadsheet sheets by how representative the
// mean of their response lines is of the individual lines.
package ultrank

import "ultrank/pkg/ultrank/interp"

// DefaultStep is the default common distance axis step in meters.
const DefaultStep = 0.5

// DefaultEpsilon is the default score divisor floor, preventing division by
// zero when the mean dispersion is zero or undefined.
const DefaultEpsilon = 1e-8

// Options configures profile aggregation.
type Options struct {
	// Step is the common distance axis step in meters. Must be positive.
	Step float64
	// Kind selects the interpolation method used to resample response lines.
	Kind interp.Kind
	// Epsilon is the lower bound applied to the mean dispersion before it
	// divides the amplitude.
	Epsilon float64
}

// DefaultOptions returns aggregation options with linear interpolation, a
// 0.5 m step, and the default epsilon.
func DefaultOptions() Options {
	return Options{
		Step:    DefaultStep,
		Kind:    interp.KindLinear,
		Epsilon: DefaultEpsilon,
	}
}

// Mode selects the measurement preset a run reports in: it tags log output
// and labels the plot's y axis.
type Mode struct {
	// Tag is the short mode identifier (e.g. "ec", "ms").
	Tag string
	// YAxisLabel is the plot y-axis label for this mode.
	YAxisLabel string
}
