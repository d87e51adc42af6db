// Package charts renders the exploratory views as PNG files: bar charts for
// the grouped step means and scatter plots with a fitted line for the
// correlation pairs worth showing. Rendering consumes the aggregates and the
// pairwise-complete value vectors; it never touches raw inputs.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fitloom/fitloom-cli/internal/fitbit"
	"github.com/fitloom/fitloom-cli/internal/frame"
	"github.com/fitloom/fitloom-cli/internal/stats"
)

// Options sizes the rendered images.
type Options struct {
	WidthIn  float64
	HeightIn float64
}

// DefaultOptions returns the report's standard chart size.
func DefaultOptions() Options {
	return Options{WidthIn: 10, HeightIn: 6}
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.WidthIn, o.HeightIn
	if w <= 0 {
		w = 10
	}
	if h <= 0 {
		h = 6
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

var (
	barFill    = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	pointColor = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	fitColor   = color.RGBA{R: 0, G: 100, B: 0, A: 255}
)

// Bar renders grouped means as a bar chart with the group keys along X.
func Bar(groups []stats.GroupMean, title, xLabel, yLabel, path string, opt Options) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	values := make(plotter.Values, len(groups))
	labels := make([]string, len(groups))
	for i, g := range groups {
		values[i] = g.Mean
		labels[i] = g.Key
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", title, err)
	}
	bars.Color = barFill
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.Y.Min = 0

	w, h := opt.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// ScatterWithFit renders paired observations with an ordinary-least-squares
// fitted line. Requires at least two points.
func ScatterWithFit(xs, ys []float64, title, xLabel, yLabel, path string, opt Options) error {
	if len(xs) != len(ys) || len(xs) < 2 {
		return fmt.Errorf("scatter %s: need at least two paired points, have %d", title, len(xs))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter %s: %w", title, err)
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Add(plotter.NewGrid())

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	fit := plotter.NewFunction(func(x float64) float64 { return alpha + beta*x })
	fit.Color = fitColor
	fit.Width = vg.Points(1.5)
	p.Add(fit)

	w, h := opt.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Ref points the report at one rendered chart.
type Ref struct {
	Title string
	Path  string
}

// RenderAll produces the report's five standard views into outDir and
// returns references in render order.
func RenderAll(daily, hourly *frame.Frame, outDir string, opt Options) ([]Ref, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	var refs []Ref
	byWeekday, err := stats.StepsByWeekday(daily)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(outDir, "steps_by_weekday.png")
	if err := Bar(byWeekday, "Average Daily Steps by Weekday", "Day of week", "Average steps", path, opt); err != nil {
		return nil, err
	}
	refs = append(refs, Ref{Title: "Average daily steps by weekday", Path: path})

	byHour, err := stats.StepsByHour(hourly)
	if err != nil {
		return nil, err
	}
	path = filepath.Join(outDir, "steps_by_hour.png")
	if err := Bar(byHour, "Average Steps by Hour of Day", "Hour", "Average steps", path, opt); err != nil {
		return nil, err
	}
	refs = append(refs, Ref{Title: "Average steps by hour of day", Path: path})

	scatters := []struct {
		x, y   string
		title  string
		xl, yl string
		file   string
	}{
		{fitbit.ColTotalSteps, fitbit.ColCalories,
			"Daily Steps vs Calories", "Total steps", "Calories", "steps_vs_calories.png"},
		{fitbit.ColSedentaryMinutes, fitbit.ColTotalMinutesAsleep,
			"Sedentary Minutes vs Minutes Asleep", "Sedentary minutes", "Minutes asleep", "sedentary_vs_sleep.png"},
		{fitbit.ColVeryActiveMin, fitbit.ColTotalMinutesAsleep,
			"Very Active Minutes vs Minutes Asleep", "Very active minutes", "Minutes asleep", "very_active_vs_sleep.png"},
	}
	for _, s := range scatters {
		xs, ys, err := stats.PairedValues(daily, s.x, s.y)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(outDir, s.file)
		if err := ScatterWithFit(xs, ys, s.title, s.xl, s.yl, path, opt); err != nil {
			return nil, err
		}
		refs = append(refs, Ref{Title: s.title, Path: path})
	}
	return refs, nil
}
