package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fitloom/fitloom-cli/internal/enrich"
	"github.com/fitloom/fitloom-cli/internal/fitbit"
	"github.com/fitloom/fitloom-cli/internal/frame"
	"github.com/fitloom/fitloom-cli/internal/stats"
)

// Input-path flags shared by the pipeline commands. Flags override config.
var (
	flagDaily          string
	flagSleep          string
	flagHourlySteps    string
	flagHourlyCalories string
)

func registerInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagDaily, "daily", "", "daily activity CSV (overrides config)")
	c.Flags().StringVar(&flagSleep, "sleep", "", "sleep CSV (overrides config)")
	c.Flags().StringVar(&flagHourlySteps, "hourly-steps", "", "hourly steps CSV (overrides config)")
	c.Flags().StringVar(&flagHourlyCalories, "hourly-calories", "", "hourly calories CSV (overrides config)")
}

func inputPaths() fitbit.Paths {
	p := fitbit.Paths{}
	if cfg != nil {
		p = fitbit.Paths{
			DailyActivity:  cfg.DailyActivityPath,
			Sleep:          cfg.SleepPath,
			HourlySteps:    cfg.HourlyStepsPath,
			HourlyCalories: cfg.HourlyCaloriesPath,
		}
	}
	if flagDaily != "" {
		p.DailyActivity = flagDaily
	}
	if flagSleep != "" {
		p.Sleep = flagSleep
	}
	if flagHourlySteps != "" {
		p.HourlySteps = flagHourlySteps
	}
	if flagHourlyCalories != "" {
		p.HourlyCalories = flagHourlyCalories
	}
	return p
}

// aggregates bundles everything the stats stage produces so report and stats
// commands share one code path.
type aggregates struct {
	daily     *frame.Frame
	hourly    *frame.Frame
	means     []stats.NamedMean
	byWeekday []stats.GroupMean
	byHour    []stats.GroupMean
	pairs     []stats.PairResult
}

// buildAggregates runs load → clean → join → enrich → aggregate.
func buildAggregates(p fitbit.Paths) (*aggregates, []fitbit.Summary, error) {
	tables, sums, err := fitbit.LoadAll(p)
	if err != nil {
		return nil, nil, err
	}
	daily, err := enrich.DailyCombined(tables.DailyActivity, tables.Sleep)
	if err != nil {
		return nil, nil, err
	}
	hourly, err := enrich.HourlyCombined(tables.HourlySteps, tables.HourlyCalories)
	if err != nil {
		return nil, nil, err
	}
	a := &aggregates{daily: daily, hourly: hourly}
	if a.means, err = stats.DailyDescriptives(daily); err != nil {
		return nil, nil, err
	}
	if a.byWeekday, err = stats.StepsByWeekday(daily); err != nil {
		return nil, nil, err
	}
	if a.byHour, err = stats.StepsByHour(hourly); err != nil {
		return nil, nil, err
	}
	if a.pairs, err = stats.DailyCorrelations(daily); err != nil {
		return nil, nil, err
	}
	return a, sums, nil
}
