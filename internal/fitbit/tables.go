// Package fitbit loads and cleans the four raw tracker extracts: daily
// activity, sleep, hourly steps, and hourly calories. Loading normalizes
// column names, coerces the user identifier to text, parses the
// month/day/year date columns, drops columns unused downstream, and removes
// exact-duplicate rows. Any malformed value fails the whole table's load.
package fitbit

import (
	"fmt"

	"github.com/fitloom/fitloom-cli/internal/frame"
)

// Canonical column names shared by the cleaned tables.
const (
	ColID                 = "id"
	ColDate               = "date"
	ColActivityHour       = "activity_hour"
	ColHour               = "hour"
	ColTotalSteps         = "total_steps"
	ColCalories           = "calories"
	ColStepTotal          = "step_total"
	ColSedentaryMinutes   = "sedentary_minutes"
	ColLightlyActiveMin   = "lightly_active_minutes"
	ColFairlyActiveMin    = "fairly_active_minutes"
	ColVeryActiveMin      = "very_active_minutes"
	ColTotalMinutesAsleep = "total_minutes_asleep"
)

var (
	dailyLayouts  = []string{"1/2/2006"}
	hourlyLayouts = []string{"1/2/2006 3:04:05 PM", "1/2/2006 3:04 PM"}
	// The sleep extract stamps a midnight time on its date column.
	sleepLayouts = []string{"1/2/2006 3:04:05 PM", "1/2/2006"}
)

// Summary describes one table's load for the validate command.
type Summary struct {
	Table      string
	RawRows    int
	Rows       int
	Duplicates int
	Columns    []string
	Dropped    []string
}

func summarize(name string, res *frame.LoadResult) Summary {
	return Summary{
		Table:      name,
		RawRows:    res.RawRows,
		Rows:       res.Frame.NumRows(),
		Duplicates: res.Duplicates,
		Columns:    res.Frame.Names(),
		Dropped:    res.Dropped,
	}
}

// LoadDailyActivity loads the daily activity extract. The distance columns
// are dropped; the four intensity-minute columns, steps, and calories are
// kept.
func LoadDailyActivity(path string) (*frame.Frame, Summary, error) {
	sch := frame.Schema{Fields: []frame.Field{
		{Source: "id", Kind: frame.String},
		{Source: "activity_date", Name: ColDate, Kind: frame.Date, Layouts: dailyLayouts},
		{Source: "total_steps", Kind: frame.Float},
		{Source: "calories", Kind: frame.Float},
		{Source: "sedentary_minutes", Kind: frame.Float},
		{Source: "lightly_active_minutes", Kind: frame.Float},
		{Source: "fairly_active_minutes", Kind: frame.Float},
		{Source: "very_active_minutes", Kind: frame.Float},
	}}
	res, err := frame.ReadCSVFile(path, "daily_activity", sch)
	if err != nil {
		return nil, Summary{}, err
	}
	return res.Frame, summarize("daily_activity", res), nil
}

// LoadSleep loads the sleep extract. The per-day record count is redundant
// with de-duplication and is dropped, as is total time in bed, which nothing
// downstream consumes.
func LoadSleep(path string) (*frame.Frame, Summary, error) {
	sch := frame.Schema{Fields: []frame.Field{
		{Source: "id", Kind: frame.String},
		{Source: "sleep_day", Name: ColDate, Kind: frame.Date, Layouts: sleepLayouts},
		{Source: "total_minutes_asleep", Kind: frame.Float},
	}}
	res, err := frame.ReadCSVFile(path, "sleep", sch)
	if err != nil {
		return nil, Summary{}, err
	}
	return res.Frame, summarize("sleep", res), nil
}

// LoadHourlySteps loads the hourly steps extract and derives the hour-of-day
// column.
func LoadHourlySteps(path string) (*frame.Frame, Summary, error) {
	return loadHourly(path, "hourly_steps", ColStepTotal)
}

// LoadHourlyCalories loads the hourly calories extract and derives the
// hour-of-day column.
func LoadHourlyCalories(path string) (*frame.Frame, Summary, error) {
	return loadHourly(path, "hourly_calories", ColCalories)
}

func loadHourly(path, name, valueCol string) (*frame.Frame, Summary, error) {
	sch := frame.Schema{Fields: []frame.Field{
		{Source: "id", Kind: frame.String},
		{Source: "activity_hour", Kind: frame.DateTime, Layouts: hourlyLayouts},
		{Source: valueCol, Kind: frame.Float},
	}}
	res, err := frame.ReadCSVFile(path, name, sch)
	if err != nil {
		return nil, Summary{}, err
	}
	f, err := deriveHour(res.Frame)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("table %s: %w", name, err)
	}
	res.Frame = f
	return f, summarize(name, res), nil
}

// deriveHour appends an hour column (0-23) extracted from activity_hour.
func deriveHour(f *frame.Frame) (*frame.Frame, error) {
	ts, err := f.Col(ColActivityHour)
	if err != nil {
		return nil, err
	}
	hour := frame.NewColumn(ColHour, frame.Float)
	for i := 0; i < f.NumRows(); i++ {
		if ts.IsNull(i) {
			hour.AppendNull()
			continue
		}
		hour.AppendFloat(float64(ts.Time(i).Hour()))
	}
	return f.WithColumn(hour)
}

// Paths holds the locations of the four raw extracts.
type Paths struct {
	DailyActivity  string
	Sleep          string
	HourlySteps    string
	HourlyCalories string
}

// Tables holds the four cleaned tables.
type Tables struct {
	DailyActivity  *frame.Frame
	Sleep          *frame.Frame
	HourlySteps    *frame.Frame
	HourlyCalories *frame.Frame
}

// LoadAll loads and cleans all four extracts. The first load error aborts
// the run; there is no partial recovery.
func LoadAll(p Paths) (*Tables, []Summary, error) {
	var (
		t    Tables
		sums []Summary
	)
	loads := []struct {
		fn   func(string) (*frame.Frame, Summary, error)
		path string
		dst  **frame.Frame
	}{
		{LoadDailyActivity, p.DailyActivity, &t.DailyActivity},
		{LoadSleep, p.Sleep, &t.Sleep},
		{LoadHourlySteps, p.HourlySteps, &t.HourlySteps},
		{LoadHourlyCalories, p.HourlyCalories, &t.HourlyCalories},
	}
	for _, l := range loads {
		f, s, err := l.fn(l.path)
		if err != nil {
			return nil, nil, err
		}
		*l.dst = f
		sums = append(sums, s)
	}
	return &t, sums, nil
}
