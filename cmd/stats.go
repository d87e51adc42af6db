package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fitloom/fitloom-cli/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run the pipeline through aggregation and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, _, err := buildAggregates(inputPaths())
		if err != nil {
			return err
		}

		fmt.Println("Daily averages")
		t := tablewriter.NewWriter(os.Stdout)
		t.SetHeader([]string{"Metric", "Mean", "N"})
		for _, m := range agg.means {
			mean := "n/a"
			if m.Mean.Defined() {
				mean = fmt.Sprintf("%.2f", m.Mean.Value)
			}
			t.Append([]string{m.Name, mean, fmt.Sprintf("%d", m.Mean.N)})
		}
		t.Render()

		fmt.Println("\nAverage steps by weekday")
		t = tablewriter.NewWriter(os.Stdout)
		t.SetHeader([]string{"Day", "Avg steps", "Days"})
		for _, g := range agg.byWeekday {
			mean := "n/a"
			if g.N > 0 {
				mean = fmt.Sprintf("%.1f", g.Mean)
			}
			t.Append([]string{g.Key, mean, fmt.Sprintf("%d", g.N)})
		}
		t.Render()

		fmt.Println("\nAverage steps by hour")
		t = tablewriter.NewWriter(os.Stdout)
		t.SetHeader([]string{"Hour", "Avg steps", "N"})
		for _, g := range agg.byHour {
			t.Append([]string{g.Key, fmt.Sprintf("%.1f", g.Mean), fmt.Sprintf("%d", g.N)})
		}
		t.Render()

		fmt.Println("\nCorrelations (Pearson, pairwise complete)")
		t = tablewriter.NewWriter(os.Stdout)
		t.SetHeader([]string{"X", "Y", "r", "N"})
		for _, p := range agg.pairs {
			t.Append([]string{p.X, p.Y, report.FormatR(p), fmt.Sprintf("%d", p.N)})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	registerInputFlags(statsCmd)
}
