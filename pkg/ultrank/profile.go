package ultrank

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ultrank/pkg/ultrank/interp"
	"ultrank/pkg/ultrank/models"
)

// axisTol absorbs floating point error when deciding whether the distance
// range divides evenly by the step.
const axisTol = 1e-9

// Aggregate resamples a sheet's response lines onto a common distance axis
// derived from the sheet's own distance extrema, and reduces them to a
// representative (mean) profile, a dispersion (sample standard deviation)
// profile, and a representativeness score.
//
// Sheets that cannot be aggregated return a *SkipError classifying the
// reason. Aggregate has no side effects; response lines dropped along the way
// are reported in the profile's Dropped list for the caller to log.
func Aggregate(sheet models.Sheet, opts Options) (*models.SheetProfile, error) {
	if len(sheet.Lines) == 0 {
		return nil, skipSheet(sheet.Name, ErrTooFewColumns)
	}

	minD, maxD, ok := distanceExtrema(sheet.Distance)
	if !ok {
		return nil, skipSheet(sheet.Name, ErrAllDistanceMissing)
	}
	if math.IsInf(minD, 0) || math.IsInf(maxD, 0) || maxD-minD < opts.Step {
		return nil, skipSheet(sheet.Name, ErrDegenerateRange)
	}
	axis := commonAxis(minD, maxD, opts.Step)

	var (
		columns [][]models.Value
		dropped []string
	)
	for _, line := range sheet.Lines {
		col, ok := resampleLine(sheet.Distance, line.Values, axis, opts.Kind)
		if !ok {
			dropped = append(dropped, line.Name)
			continue
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, skipSheet(sheet.Name, ErrNoInterpolableLines)
	}

	mean, std := profileStats(columns)
	return &models.SheetProfile{
		Sheet:   sheet.Name,
		Axis:    axis,
		Mean:    mean,
		Std:     std,
		Dropped: dropped,
		Metrics: scoreMetrics(mean, std, opts.Epsilon),
	}, nil
}

// distanceExtrema returns the minimum and maximum over defined distance
// values. ok is false when every distance is undefined.
func distanceExtrema(distance []models.Value) (minD, maxD float64, ok bool) {
	for _, d := range distance {
		if !d.OK || math.IsNaN(d.F) {
			continue
		}
		if !ok || d.F < minD {
			minD = d.F
		}
		if !ok || d.F > maxD {
			maxD = d.F
		}
		ok = true
	}
	return minD, maxD, ok
}

// commonAxis builds the resampling grid min, min+step, ... inclusive of max.
// When the range is not an exact multiple of the step, one trailing point
// past max is kept so the grid covers the full observed range.
func commonAxis(minD, maxD, step float64) []float64 {
	n := int(math.Floor((maxD-minD)/step + axisTol))
	axis := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		axis = append(axis, minD+float64(i)*step)
	}
	if maxD-axis[len(axis)-1] > axisTol*step {
		axis = append(axis, minD+float64(n+1)*step)
	}
	return axis
}

// resampleLine interpolates one response line onto the axis. Axis points
// outside the line's own observed distance support stay undefined; there is
// no extrapolation. ok is false when the line has fewer than two usable
// points, fewer than two distinct distances, or the interpolator fit fails.
func resampleLine(distance, values []models.Value, axis []float64, kind interp.Kind) ([]models.Value, bool) {
	xs, ys := dedupePoints(distance, values)
	if len(xs) < 2 {
		return nil, false
	}
	pred, err := interp.New(kind, xs, ys)
	if err != nil {
		return nil, false
	}

	lo, hi := xs[0], xs[len(xs)-1]
	col := make([]models.Value, len(axis))
	for i, x := range axis {
		if x < lo || x > hi {
			continue
		}
		col[i] = models.Some(pred.Predict(x))
	}
	return col, true
}

// dedupePoints pairs defined (distance, value) positions, averages values
// sharing the exact same distance, and returns the pairs sorted ascending by
// distance. Interpolation requires a strictly increasing, deduplicated
// domain.
func dedupePoints(distance, values []models.Value) (xs, ys []float64) {
	type group struct {
		sum float64
		n   int
	}
	groups := make(map[float64]*group)
	for i, d := range distance {
		if i >= len(values) {
			break
		}
		v := values[i]
		if !d.OK || !v.OK {
			continue
		}
		g := groups[d.F]
		if g == nil {
			g = &group{}
			groups[d.F] = g
		}
		g.sum += v.F
		g.n++
	}
	if len(groups) < 2 {
		return nil, nil
	}

	xs = make([]float64, 0, len(groups))
	for d := range groups {
		xs = append(xs, d)
	}
	sort.Float64s(xs)
	ys = make([]float64, len(xs))
	for i, d := range xs {
		g := groups[d]
		ys[i] = g.sum / float64(g.n)
	}
	return xs, ys
}

// profileStats reduces the interpolated columns row-wise. A row's mean needs
// one defined value; its sample standard deviation needs two, and stays
// undefined otherwise.
func profileStats(columns [][]models.Value) (mean, std []models.Value) {
	n := len(columns[0])
	mean = make([]models.Value, n)
	std = make([]models.Value, n)
	row := make([]float64, 0, len(columns))
	for i := 0; i < n; i++ {
		row = row[:0]
		for _, col := range columns {
			if col[i].OK {
				row = append(row, col[i].F)
			}
		}
		switch {
		case len(row) == 0:
		case len(row) == 1:
			mean[i] = models.Some(row[0])
		default:
			mean[i] = models.Some(stat.Mean(row, nil))
			std[i] = models.Some(stat.StdDev(row, nil))
		}
	}
	return mean, std
}

// scoreMetrics computes mean dispersion, amplitude, and the score
// amplitude / max(mean dispersion, epsilon). An undefined amplitude yields a
// zero score; an undefined mean dispersion degrades the divisor to epsilon.
func scoreMetrics(mean, std []models.Value, epsilon float64) models.Metrics {
	var m models.Metrics

	if stds := definedValues(std); len(stds) > 0 {
		m.MeanStd = models.Some(stat.Mean(stds, nil))
	}

	means := definedValues(mean)
	if len(means) == 0 {
		return m
	}
	m.Amplitude = models.Some(floats.Max(means) - floats.Min(means))

	denom := epsilon
	if m.MeanStd.OK && m.MeanStd.F > denom {
		denom = m.MeanStd.F
	}
	m.Score = m.Amplitude.F / denom
	return m
}

func definedValues(vals []models.Value) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v.OK {
			out = append(out, v.F)
		}
	}
	return out
}
