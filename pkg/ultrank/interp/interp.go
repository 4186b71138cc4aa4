// Package interp maps configured interpolation kinds onto gonum predictors.
package interp

import (
	"fmt"
	"sort"

	ginterp "gonum.org/v1/gonum/interp"
)

// Kind identifies an interpolation method for resampling a response line
// onto the common distance axis.
type Kind string

const (
	// KindLinear interpolates linearly between neighbouring points.
	KindLinear Kind = "linear"
	// KindNearest takes the value of the nearest point, lower on ties.
	KindNearest Kind = "nearest"
	// KindZero holds the value of the previous point (a step function).
	KindZero Kind = "zero"
	// KindSLinear is an alias for linear interpolation.
	KindSLinear Kind = "slinear"
	// KindQuadratic uses an Akima spline.
	KindQuadratic Kind = "quadratic"
	// KindCubic uses a natural cubic spline.
	KindCubic Kind = "cubic"
)

// Kinds lists the recognized interpolation kinds.
func Kinds() []Kind {
	return []Kind{KindLinear, KindNearest, KindZero, KindSLinear, KindQuadratic, KindCubic}
}

// Valid reports whether k is a recognized kind.
func (k Kind) Valid() bool {
	switch k {
	case KindLinear, KindNearest, KindZero, KindSLinear, KindQuadratic, KindCubic:
		return true
	}
	return false
}

// New fits a predictor of the given kind to the (xs, ys) pairs. The xs must
// be strictly increasing with at least two points. Spline kinds may need more
// points than are available, in which case the fit error is returned.
func New(k Kind, xs, ys []float64) (ginterp.Predictor, error) {
	var p ginterp.FittablePredictor
	switch k {
	case KindLinear, KindSLinear:
		p = &ginterp.PiecewiseLinear{}
	case KindNearest:
		p = &nearestNeighbor{}
	case KindZero:
		p = &previousValue{}
	case KindQuadratic:
		p = &ginterp.AkimaSpline{}
	case KindCubic:
		p = &ginterp.NaturalCubic{}
	default:
		return nil, fmt.Errorf("unknown interpolation kind %q", k)
	}
	if err := p.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit %s interpolator: %w", k, err)
	}
	return p, nil
}

// nearestNeighbor predicts the y value of the closest x, preferring the lower
// neighbour when x is equidistant from both. gonum has no nearest-neighbour
// predictor, so this implements its FittablePredictor interface directly.
type nearestNeighbor struct {
	xs, ys []float64
}

func (p *nearestNeighbor) Fit(xs, ys []float64) error {
	if err := validatePoints(xs, ys); err != nil {
		return err
	}
	p.xs = xs
	p.ys = ys
	return nil
}

func (p *nearestNeighbor) Predict(x float64) float64 {
	i := sort.SearchFloat64s(p.xs, x)
	if i == 0 {
		return p.ys[0]
	}
	if i == len(p.xs) {
		return p.ys[len(p.ys)-1]
	}
	if x-p.xs[i-1] <= p.xs[i]-x {
		return p.ys[i-1]
	}
	return p.ys[i]
}

// previousValue predicts the y value of the greatest x not exceeding the
// query point, clamping below the first point.
type previousValue struct {
	xs, ys []float64
}

func (p *previousValue) Fit(xs, ys []float64) error {
	if err := validatePoints(xs, ys); err != nil {
		return err
	}
	p.xs = xs
	p.ys = ys
	return nil
}

func (p *previousValue) Predict(x float64) float64 {
	// Index of the last xs <= x.
	i := sort.SearchFloat64s(p.xs, x)
	if i < len(p.xs) && p.xs[i] == x {
		return p.ys[i]
	}
	if i == 0 {
		return p.ys[0]
	}
	return p.ys[i-1]
}

func validatePoints(xs, ys []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(xs))
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("xs and ys lengths differ: %d vs %d", len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("xs must be strictly increasing at index %d", i)
		}
	}
	return nil
}
