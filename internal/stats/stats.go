// Package stats computes the descriptive and correlation aggregates over the
// combined tables. Every mean is taken over non-null observations only, and
// correlations use pairwise-complete observations: a row is excluded from a
// pair only when either of that pair's variables is null.
package stats

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/fitloom/fitloom-cli/internal/enrich"
	"github.com/fitloom/fitloom-cli/internal/fitbit"
	"github.com/fitloom/fitloom-cli/internal/frame"
)

// Mean is an average over the non-null observations of a column. N is the
// number of observations; a mean with N == 0 is undefined.
type Mean struct {
	Value float64
	N     int
}

// Defined reports whether the mean was computed from at least one
// observation.
func (m Mean) Defined() bool { return m.N > 0 }

// MeanOf computes the mean of a float column, excluding nulls from both the
// numerator and the denominator.
func MeanOf(f *frame.Frame, col string) (Mean, error) {
	vals, err := f.FloatValues(col)
	if err != nil {
		return Mean{}, err
	}
	if len(vals) == 0 {
		return Mean{}, nil
	}
	return Mean{Value: stat.Mean(vals, nil), N: len(vals)}, nil
}

// NamedMean pairs a metric name with its mean for ordered report output.
type NamedMean struct {
	Name string
	Mean Mean
}

// DailyDescriptives computes the five headline means from DailyCombined.
func DailyDescriptives(daily *frame.Frame) ([]NamedMean, error) {
	cols := []string{
		fitbit.ColTotalSteps,
		fitbit.ColTotalMinutesAsleep,
		fitbit.ColSedentaryMinutes,
		fitbit.ColCalories,
		enrich.ColTotalActiveMins,
	}
	out := make([]NamedMean, 0, len(cols))
	for _, c := range cols {
		m, err := MeanOf(daily, c)
		if err != nil {
			return nil, err
		}
		out = append(out, NamedMean{Name: c, Mean: m})
	}
	return out, nil
}

// GroupMean is the mean of one metric within one group.
type GroupMean struct {
	Key  string
	Mean float64
	N    int
}

// StepsByWeekday averages total_steps per day_of_week over DailyCombined.
// The result always has seven entries in Sunday-first order; a weekday with
// no observations has N == 0.
func StepsByWeekday(daily *frame.Frame) ([]GroupMean, error) {
	day, err := daily.Col(enrich.ColDayOfWeek)
	if err != nil {
		return nil, err
	}
	steps, err := daily.Col(fitbit.ColTotalSteps)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]float64, 7)
	counts := make(map[string]int, 7)
	for i := 0; i < daily.NumRows(); i++ {
		if day.IsNull(i) || steps.IsNull(i) {
			continue
		}
		sums[day.Str(i)] += steps.Float(i)
		counts[day.Str(i)]++
	}
	out := make([]GroupMean, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		g := GroupMean{Key: name, N: counts[name]}
		if g.N > 0 {
			g.Mean = sums[name] / float64(g.N)
		}
		out = append(out, g)
	}
	return out, nil
}

// StepsByHour averages step_total per hour of day over HourlyCombined,
// ascending by hour. Hours absent from the data are omitted.
func StepsByHour(hourly *frame.Frame) ([]GroupMean, error) {
	hour, err := hourly.Col(fitbit.ColHour)
	if err != nil {
		return nil, err
	}
	steps, err := hourly.Col(fitbit.ColStepTotal)
	if err != nil {
		return nil, err
	}
	sums := make(map[int]float64, 24)
	counts := make(map[int]int, 24)
	for i := 0; i < hourly.NumRows(); i++ {
		if hour.IsNull(i) || steps.IsNull(i) {
			continue
		}
		h := int(hour.Float(i))
		sums[h] += steps.Float(i)
		counts[h]++
	}
	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	out := make([]GroupMean, 0, len(hours))
	for _, h := range hours {
		out = append(out, GroupMean{
			Key:  fmt.Sprintf("%02d:00", h),
			Mean: sums[h] / float64(counts[h]),
			N:    counts[h],
		})
	}
	return out, nil
}
