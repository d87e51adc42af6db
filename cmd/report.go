package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fitloom/fitloom-cli/internal/charts"
	"github.com/fitloom/fitloom-cli/internal/report"
)

var (
	repOutDir      string
	repChartWidth  float64
	repChartHeight float64
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full pipeline and write charts plus a markdown report",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := inputPaths()
		agg, sums, err := buildAggregates(paths)
		if err != nil {
			return err
		}
		color.Green("✓ Loaded and combined %d daily and %d hourly rows", agg.daily.NumRows(), agg.hourly.NumRows())
		if debug {
			for _, s := range sums {
				fmt.Printf("  %s: kept %d of %d rows, dropped columns %v\n", s.Table, s.Rows, s.RawRows, s.Dropped)
			}
		}

		outDir := repOutDir
		if outDir == "" && cfg != nil {
			outDir = cfg.OutputDir
		}
		if outDir == "" {
			outDir = "out"
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		opt := charts.DefaultOptions()
		if cfg != nil {
			if cfg.ChartWidthIn > 0 {
				opt.WidthIn = cfg.ChartWidthIn
			}
			if cfg.ChartHeightIn > 0 {
				opt.HeightIn = cfg.ChartHeightIn
			}
		}
		if cmd.Flags().Changed("chart-width") {
			opt.WidthIn = repChartWidth
		}
		if cmd.Flags().Changed("chart-height") {
			opt.HeightIn = repChartHeight
		}
		refs, err := charts.RenderAll(agg.daily, agg.hourly, filepath.Join(outDir, "charts"), opt)
		if err != nil {
			return err
		}
		color.Green("✓ Rendered %d charts", len(refs))

		md := report.Markdown(report.Data{
			RunID:       report.NewRunID(),
			GeneratedAt: time.Now(),
			Loads:       sums,
			Means:       agg.means,
			ByWeekday:   agg.byWeekday,
			ByHour:      agg.byHour,
			Pairs:       agg.pairs,
			Charts:      refs,
		})
		outFile := filepath.Join(outDir, "report.md")
		if err := report.WriteFile(outFile, []byte(md)); err != nil {
			return err
		}
		color.Green("✓ Wrote %s", outFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	registerInputFlags(reportCmd)
	reportCmd.Flags().StringVarP(&repOutDir, "out", "o", "", "output directory (overrides config)")
	reportCmd.Flags().Float64Var(&repChartWidth, "chart-width", 10, "chart width in inches")
	reportCmd.Flags().Float64Var(&repChartHeight, "chart-height", 6, "chart height in inches")
}
