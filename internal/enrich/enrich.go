// Package enrich builds the two working tables from the cleaned extracts:
// DailyCombined (activity ⟗ sleep on id+date) and HourlyCombined (steps ⟗
// calories on id+activity_hour+hour), each with derived calendar and
// aggregate columns.
package enrich

import (
	"fmt"

	"github.com/fitloom/fitloom-cli/internal/fitbit"
	"github.com/fitloom/fitloom-cli/internal/frame"
)

// Derived column names.
const (
	ColDayOfWeek       = "day_of_week"
	ColTotalActiveMins = "total_active_minutes"
)

// DailyCombined outer-joins cleaned daily activity and sleep on (id, date)
// and derives day_of_week and total_active_minutes. Sleep columns are null
// for days with no sleep record, and activity columns are null for
// sleep-only days.
func DailyCombined(activity, sleep *frame.Frame) (*frame.Frame, error) {
	j, err := frame.OuterJoin(activity, sleep, []string{fitbit.ColID, fitbit.ColDate})
	if err != nil {
		return nil, fmt.Errorf("daily combined: %w", err)
	}
	j, err = withDayOfWeek(j, fitbit.ColDate)
	if err != nil {
		return nil, fmt.Errorf("daily combined: %w", err)
	}
	j, err = withTotalActiveMinutes(j)
	if err != nil {
		return nil, fmt.Errorf("daily combined: %w", err)
	}
	return j, nil
}

// HourlyCombined outer-joins cleaned hourly steps and calories on
// (id, activity_hour, hour) and derives day_of_week.
func HourlyCombined(steps, calories *frame.Frame) (*frame.Frame, error) {
	keys := []string{fitbit.ColID, fitbit.ColActivityHour, fitbit.ColHour}
	j, err := frame.OuterJoin(steps, calories, keys)
	if err != nil {
		return nil, fmt.Errorf("hourly combined: %w", err)
	}
	j, err = withDayOfWeek(j, fitbit.ColActivityHour)
	if err != nil {
		return nil, fmt.Errorf("hourly combined: %w", err)
	}
	return j, nil
}

// withDayOfWeek appends the full English weekday name derived from the given
// date or datetime column. Weekday ordering elsewhere in the pipeline is
// Sunday-first.
func withDayOfWeek(f *frame.Frame, dateCol string) (*frame.Frame, error) {
	d, err := f.Col(dateCol)
	if err != nil {
		return nil, err
	}
	day := frame.NewColumn(ColDayOfWeek, frame.String)
	for i := 0; i < f.NumRows(); i++ {
		if d.IsNull(i) {
			day.AppendNull()
			continue
		}
		day.AppendString(d.Time(i).Weekday().String())
	}
	return f.WithColumn(day)
}

// withTotalActiveMinutes appends the sum of the lightly, fairly, and very
// active minute columns. A null component counts as zero as long as at least
// one component is present; when all three are null the row carries no
// activity data at all (it came from the sleep side of the join) and the
// derived value is null rather than zero.
func withTotalActiveMinutes(f *frame.Frame) (*frame.Frame, error) {
	var comps []*frame.Column
	for _, name := range []string{fitbit.ColLightlyActiveMin, fitbit.ColFairlyActiveMin, fitbit.ColVeryActiveMin} {
		c, err := f.Col(name)
		if err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	total := frame.NewColumn(ColTotalActiveMins, frame.Float)
	for i := 0; i < f.NumRows(); i++ {
		sum := 0.0
		present := false
		for _, c := range comps {
			if c.IsNull(i) {
				continue
			}
			sum += c.Float(i)
			present = true
		}
		if !present {
			total.AppendNull()
			continue
		}
		total.AppendFloat(sum)
	}
	return f.WithColumn(total)
}
