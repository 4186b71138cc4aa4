package ultrank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultrank/pkg/ultrank/interp"
	"ultrank/pkg/ultrank/models"
)

func defined(fs ...float64) []models.Value {
	vals := make([]models.Value, len(fs))
	for i, f := range fs {
		vals[i] = models.Some(f)
	}
	return vals
}

func undefined(n int) []models.Value {
	return make([]models.Value, n)
}

func optsWithStep(step float64) Options {
	opts := DefaultOptions()
	opts.Step = step
	return opts
}

func TestAggregateDedupesDuplicateDistances(t *testing.T) {
	// Duplicate distance 1 carries values 20 and 22; the deduplicated domain
	// must hold their mean.
	sheet := models.Sheet{
		Name:     "100kHz",
		Distance: defined(0, 1, 1, 2, 3),
		Lines: []models.Line{
			{Name: "line1", Values: defined(10, 20, 22, 30, 40)},
		},
	}

	profile, err := Aggregate(sheet, optsWithStep(1))
	require.NoError(t, err)

	require.Equal(t, []float64{0, 1, 2, 3}, profile.Axis)
	require.Len(t, profile.Mean, 4)
	want := []float64{10, 21, 30, 40}
	for i, w := range want {
		require.True(t, profile.Mean[i].OK, "mean[%d] should be defined", i)
		assert.InDelta(t, w, profile.Mean[i].F, 1e-12, "mean[%d]", i)
	}
	assert.Empty(t, profile.Dropped)

	require.True(t, profile.Metrics.Amplitude.OK)
	assert.InDelta(t, 30, profile.Metrics.Amplitude.F, 1e-12)
}

func TestAggregateSkipsAllMissingDistance(t *testing.T) {
	sheet := models.Sheet{
		Name:     "empty",
		Distance: undefined(4),
		Lines: []models.Line{
			{Name: "line1", Values: defined(1, 2, 3, 4)},
		},
	}

	_, err := Aggregate(sheet, DefaultOptions())
	require.ErrorIs(t, err, ErrAllDistanceMissing)

	var skip *SkipError
	require.ErrorAs(t, err, &skip)
	assert.Equal(t, "empty", skip.Sheet)
}

func TestAggregateSkipsDegenerateRange(t *testing.T) {
	sheet := models.Sheet{
		Name:     "short",
		Distance: defined(0, 0.1, 0.2),
		Lines: []models.Line{
			{Name: "line1", Values: defined(1, 2, 3)},
		},
	}

	_, err := Aggregate(sheet, optsWithStep(0.5))
	require.ErrorIs(t, err, ErrDegenerateRange)
}

func TestAggregateSkipsTooFewColumns(t *testing.T) {
	sheet := models.Sheet{
		Name:     "narrow",
		Distance: defined(0, 1, 2),
	}

	_, err := Aggregate(sheet, DefaultOptions())
	require.ErrorIs(t, err, ErrTooFewColumns)
}

func TestAggregateSkipsWhenNoInterpolableLines(t *testing.T) {
	sheet := models.Sheet{
		Name:     "sparse",
		Distance: defined(0, 1, 2),
		Lines: []models.Line{
			// A single valid point is not enough to interpolate.
			{Name: "line1", Values: []models.Value{models.Some(5), models.None(), models.None()}},
		},
	}

	_, err := Aggregate(sheet, optsWithStep(1))
	require.ErrorIs(t, err, ErrNoInterpolableLines)
}

func TestAggregateIgnoresFullyMissingLine(t *testing.T) {
	// Two lines, one entirely missing: the profile must equal the valid line
	// and the missing one must be reported as dropped.
	sheet := models.Sheet{
		Name:     "half",
		Distance: defined(0, 1, 2, 3),
		Lines: []models.Line{
			{Name: "good", Values: defined(1, 2, 3, 4)},
			{Name: "dead", Values: undefined(4)},
		},
	}

	profile, err := Aggregate(sheet, optsWithStep(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"dead"}, profile.Dropped)
	want := []float64{1, 2, 3, 4}
	for i, w := range want {
		require.True(t, profile.Mean[i].OK)
		assert.InDelta(t, w, profile.Mean[i].F, 1e-12)
	}

	// One contributing line per row: dispersion stays undefined, so the
	// score divisor degrades to epsilon.
	for i := range profile.Std {
		assert.False(t, profile.Std[i].OK, "std[%d]", i)
	}
	assert.False(t, profile.Metrics.MeanStd.OK)
	require.True(t, profile.Metrics.Amplitude.OK)
	assert.InDelta(t, 3/DefaultEpsilon, profile.Metrics.Score, 1)
}

func TestAggregateDoesNotExtrapolate(t *testing.T) {
	// Line B is only observed at distances 1 and 2; outside that support its
	// interpolated values must stay undefined, so the dispersion at the axis
	// edges is undefined while the mean still follows line A alone.
	sheet := models.Sheet{
		Name:     "partial",
		Distance: defined(0, 1, 2, 3),
		Lines: []models.Line{
			{Name: "a", Values: defined(0, 10, 20, 30)},
			{Name: "b", Values: []models.Value{models.None(), models.Some(5), models.Some(7), models.None()}},
		},
	}

	profile, err := Aggregate(sheet, optsWithStep(1))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3}, profile.Axis)

	require.True(t, profile.Mean[0].OK)
	assert.InDelta(t, 0, profile.Mean[0].F, 1e-12)
	require.True(t, profile.Mean[1].OK)
	assert.InDelta(t, 7.5, profile.Mean[1].F, 1e-12)

	assert.False(t, profile.Std[0].OK)
	assert.True(t, profile.Std[1].OK)
	assert.True(t, profile.Std[2].OK)
	assert.False(t, profile.Std[3].OK)
}

func TestAggregateScoreEpsilonFloor(t *testing.T) {
	// Identical lines give zero dispersion everywhere; the score must fall
	// back to amplitude/epsilon instead of dividing by zero.
	sheet := models.Sheet{
		Name:     "twin",
		Distance: defined(0, 1, 2),
		Lines: []models.Line{
			{Name: "a", Values: defined(1, 2, 3)},
			{Name: "b", Values: defined(1, 2, 3)},
		},
	}

	profile, err := Aggregate(sheet, optsWithStep(1))
	require.NoError(t, err)

	require.True(t, profile.Metrics.MeanStd.OK)
	assert.Equal(t, 0.0, profile.Metrics.MeanStd.F)
	assert.InDelta(t, 2/DefaultEpsilon, profile.Metrics.Score, 1)
	assert.GreaterOrEqual(t, profile.Metrics.Score, 0.0)
}

func TestAggregateDeterministic(t *testing.T) {
	sheet := models.Sheet{
		Name:     "det",
		Distance: defined(0, 0.4, 0.4, 1.1, 2.3, 3.7),
		Lines: []models.Line{
			{Name: "a", Values: defined(3.1, 1.2, 1.6, 4.8, 2.2, 0.9)},
			{Name: "b", Values: defined(2.0, 2.5, 2.5, 3.5, 3.0, 1.0)},
		},
	}

	first, err := Aggregate(sheet, DefaultOptions())
	require.NoError(t, err)
	second, err := Aggregate(sheet, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCommonAxisBoundary(t *testing.T) {
	tests := []struct {
		name           string
		min, max, step float64
		want           []float64
	}{
		{
			// Exact multiple: the axis ends precisely at max.
			name: "exact multiple",
			min:  0, max: 3, step: 1,
			want: []float64{0, 1, 2, 3},
		},
		{
			// Fractional remainder: one trailing point past max covers the
			// full observed range.
			name: "fractional remainder",
			min:  0, max: 2.5, step: 1,
			want: []float64{0, 1, 2, 3},
		},
		{
			name: "offset start",
			min:  1.5, max: 2.5, step: 0.5,
			want: []float64{1.5, 2, 2.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commonAxis(tt.min, tt.max, tt.step)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestDedupePointsStrictlyIncreasing(t *testing.T) {
	distance := defined(2, 0, 2, 1, 0)
	values := defined(20, 1, 24, 10, 3)

	xs, ys := dedupePoints(distance, values)
	require.Equal(t, []float64{0, 1, 2}, xs)
	require.Equal(t, []float64{2, 10, 22}, ys)
	for i := 1; i < len(xs); i++ {
		assert.Greater(t, xs[i], xs[i-1])
	}
}

func TestAggregateCubicKind(t *testing.T) {
	sheet := models.Sheet{
		Name:     "smooth",
		Distance: defined(0, 1, 2, 3, 4),
		Lines: []models.Line{
			{Name: "a", Values: defined(0, 1, 4, 9, 16)},
		},
	}

	opts := optsWithStep(1)
	opts.Kind = interp.KindCubic
	profile, err := Aggregate(sheet, opts)
	require.NoError(t, err)

	// Knot values are reproduced exactly by the spline.
	for i, w := range []float64{0, 1, 4, 9, 16} {
		require.True(t, profile.Mean[i].OK)
		assert.InDelta(t, w, profile.Mean[i].F, 1e-9)
	}
}
