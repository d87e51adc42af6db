// Package report renders the final markdown report from the computed
// aggregates and writes it (and any other pipeline output) atomically.
package report

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitloom/fitloom-cli/internal/charts"
	"github.com/fitloom/fitloom-cli/internal/fitbit"
	"github.com/fitloom/fitloom-cli/internal/stats"
)

// Data is everything the report consumes. The reporter never recomputes; it
// only renders what the aggregation stage produced.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	Loads       []fitbit.Summary
	Means       []stats.NamedMean
	ByWeekday   []stats.GroupMean
	ByHour      []stats.GroupMean
	Pairs       []stats.PairResult
	Charts      []charts.Ref
}

// NewRunID returns a fresh identifier stamped into the report metadata.
func NewRunID() string { return uuid.NewString() }

// Round2 rounds a coefficient to two decimals, the report's fixed precision
// for correlations.
func Round2(r float64) float64 { return math.Round(r*100) / 100 }

// FormatR renders a correlation for the report: two decimals when defined,
// an explicit non-numeric marker otherwise.
func FormatR(p stats.PairResult) string {
	if !p.Defined {
		return "n/a (insufficient or degenerate data)"
	}
	return fmt.Sprintf("%.2f", Round2(p.R))
}

// Markdown renders the full report.
func Markdown(d Data) string {
	var b strings.Builder
	b.WriteString("# Fitness Tracker Usage Report\n\n")
	fmt.Fprintf(&b, "Run `%s`, generated %s.\n\n", d.RunID, d.GeneratedAt.Format("2 January 2006 15:04 MST"))

	b.WriteString("## Inputs\n\n")
	b.WriteString("| Table | Raw rows | Rows kept | Duplicates removed |\n")
	b.WriteString("|-------|----------|-----------|--------------------|\n")
	for _, s := range d.Loads {
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", s.Table, s.RawRows, s.Rows, s.Duplicates)
	}
	b.WriteString("\n")

	b.WriteString("## Daily averages\n\n")
	b.WriteString("| Metric | Mean | Observations |\n")
	b.WriteString("|--------|------|--------------|\n")
	for _, m := range d.Means {
		if m.Mean.Defined() {
			fmt.Fprintf(&b, "| %s | %.2f | %d |\n", m.Name, m.Mean.Value, m.Mean.N)
		} else {
			fmt.Fprintf(&b, "| %s | n/a | 0 |\n", m.Name)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Average steps by weekday\n\n")
	b.WriteString("| Day | Average steps | Days observed |\n")
	b.WriteString("|-----|---------------|---------------|\n")
	for _, g := range d.ByWeekday {
		if g.N > 0 {
			fmt.Fprintf(&b, "| %s | %.1f | %d |\n", g.Key, g.Mean, g.N)
		} else {
			fmt.Fprintf(&b, "| %s | n/a | 0 |\n", g.Key)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Average steps by hour\n\n")
	b.WriteString("| Hour | Average steps |\n")
	b.WriteString("|------|---------------|\n")
	for _, g := range d.ByHour {
		fmt.Fprintf(&b, "| %s | %.1f |\n", g.Key, g.Mean)
	}
	b.WriteString("\n")

	b.WriteString("## Correlations\n\n")
	b.WriteString("| Pair | r | Paired observations |\n")
	b.WriteString("|------|---|---------------------|\n")
	for _, p := range d.Pairs {
		fmt.Fprintf(&b, "| %s ~ %s | %s | %d |\n", p.X, p.Y, FormatR(p), p.N)
	}
	b.WriteString("\n")

	if len(d.Charts) > 0 {
		b.WriteString("## Charts\n\n")
		for _, c := range d.Charts {
			fmt.Fprintf(&b, "![%s](%s)\n\n", c.Title, c.Path)
		}
	}

	b.WriteString("## Recommendations\n\n")
	for _, line := range recommendations(d) {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// recommendations turns the aggregates into the report's prose takeaways for
// a business audience. Each line is keyed off a computed value rather than
// hard-coded, so the text tracks the data.
func recommendations(d Data) []string {
	var out []string

	if low, ok := lowestWeekday(d.ByWeekday); ok {
		out = append(out, fmt.Sprintf(
			"%s shows the lowest average step count of the week; schedule activity reminders and weekend challenges around it.", low))
	}
	if peak, dip, ok := hourExtremes(d.ByHour); ok {
		out = append(out, fmt.Sprintf(
			"Movement peaks around %s and dips around %s; mid-afternoon nudges are the cheapest win for daily step goals.", peak, dip))
	}
	for _, p := range d.Pairs {
		if !p.Defined {
			continue
		}
		switch {
		case p.X == fitbit.ColTotalSteps && p.Y == fitbit.ColCalories && p.R > 0.3:
			out = append(out, fmt.Sprintf(
				"Steps and calories burned move together (r=%s); framing step goals as calorie goals is supported by the data.", FormatR(p)))
		case p.X == fitbit.ColSedentaryMinutes && p.R < -0.3:
			out = append(out, fmt.Sprintf(
				"More sedentary time is associated with less sleep (r=%s); position the tracker's sedentary alerts as a sleep-quality feature.", FormatR(p)))
		case p.X == fitbit.ColLightlyActiveMin && math.Abs(p.R) < 0.1:
			out = append(out, fmt.Sprintf(
				"Light activity shows no meaningful relationship with sleep duration (r=%s); sleep messaging should focus on sedentary time instead.", FormatR(p)))
		}
	}
	if len(out) == 0 {
		out = append(out, "The aggregates did not meet any recommendation threshold; collect more data before drawing conclusions.")
	}
	return out
}

func lowestWeekday(groups []stats.GroupMean) (string, bool) {
	best := ""
	bestMean := math.Inf(1)
	for _, g := range groups {
		if g.N == 0 {
			continue
		}
		if g.Mean < bestMean {
			bestMean = g.Mean
			best = g.Key
		}
	}
	return best, best != ""
}

func hourExtremes(groups []stats.GroupMean) (peak, dip string, ok bool) {
	if len(groups) < 2 {
		return "", "", false
	}
	hi, lo := math.Inf(-1), math.Inf(1)
	for _, g := range groups {
		if g.Mean > hi {
			hi = g.Mean
			peak = g.Key
		}
		if g.Mean < lo {
			lo = g.Mean
			dip = g.Key
		}
	}
	return peak, dip, true
}

// WriteFile writes data to a temp file and atomically renames it into place.
func WriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
