package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/fitloom/fitloom-cli/internal/fitbit"
	"github.com/fitloom/fitloom-cli/internal/frame"
)

// Pair names the two variables of one correlation.
type Pair struct {
	X, Y string
}

// DailyPairs are the six fixed correlations the report runs over
// DailyCombined.
var DailyPairs = []Pair{
	{fitbit.ColTotalSteps, fitbit.ColCalories},
	{fitbit.ColTotalSteps, fitbit.ColTotalMinutesAsleep},
	{fitbit.ColSedentaryMinutes, fitbit.ColTotalMinutesAsleep},
	{fitbit.ColLightlyActiveMin, fitbit.ColTotalMinutesAsleep},
	{fitbit.ColFairlyActiveMin, fitbit.ColTotalMinutesAsleep},
	{fitbit.ColVeryActiveMin, fitbit.ColTotalMinutesAsleep},
}

// PairResult is one Pearson correlation. Defined is false when the input was
// degenerate (fewer than two pairwise-complete observations, or zero
// variance in either variable); R is meaningless in that case and must not
// be rendered as a number.
type PairResult struct {
	Pair
	R       float64
	N       int
	Defined bool
}

// PairedValues extracts the rows where both columns are non-null, preserving
// row order. Used for correlation and for the scatter charts.
func PairedValues(f *frame.Frame, x, y string) (xs, ys []float64, err error) {
	cx, err := f.Col(x)
	if err != nil {
		return nil, nil, err
	}
	cy, err := f.Col(y)
	if err != nil {
		return nil, nil, err
	}
	if cx.Kind() != frame.Float || cy.Kind() != frame.Float {
		return nil, nil, fmt.Errorf("correlation needs float columns, got %s %s and %s %s",
			x, cx.Kind(), y, cy.Kind())
	}
	for i := 0; i < f.NumRows(); i++ {
		if cx.IsNull(i) || cy.IsNull(i) {
			continue
		}
		xs = append(xs, cx.Float(i))
		ys = append(ys, cy.Float(i))
	}
	return xs, ys, nil
}

// Correlate computes the Pearson correlation coefficient between two float
// columns over pairwise-complete observations.
func Correlate(f *frame.Frame, x, y string) (PairResult, error) {
	res := PairResult{Pair: Pair{X: x, Y: y}}
	xs, ys, err := PairedValues(f, x, y)
	if err != nil {
		return res, err
	}
	res.N = len(xs)
	if res.N < 2 {
		return res, nil
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return res, nil
	}
	r := stat.Correlation(xs, ys, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	res.R = r
	res.Defined = true
	return res, nil
}

// DailyCorrelations computes the six fixed pairs over DailyCombined.
func DailyCorrelations(daily *frame.Frame) ([]PairResult, error) {
	out := make([]PairResult, 0, len(DailyPairs))
	for _, p := range DailyPairs {
		r, err := Correlate(daily, p.X, p.Y)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
