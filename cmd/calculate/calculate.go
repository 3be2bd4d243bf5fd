// Package calculate handles offline calculation from pre-categorized files
package calculate

import (
	"context"

	"github.com/spf13/cobra"

	"ecolens/carbon-csv/cmd/root"
	"ecolens/carbon-csv/internal/analyzer"
	"ecolens/carbon-csv/internal/container"
	"ecolens/carbon-csv/internal/logging"
)

var breakdownCSV string

// Cmd represents the calculate command
var Cmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate emissions from a pre-categorized CSV",
	Long: `Calculate reads a CSV whose rows already carry a category column and runs
only the deterministic emission calculation and benchmark comparison. No AI
calls are made.`,
	Run: calculateFunc,
}

func init() {
	Cmd.Flags().StringVar(&breakdownCSV, "breakdown-csv", "", "Also export the category breakdown to this CSV file")
}

func calculateFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required")
	}

	cfg := root.Cfg
	// The pre-categorized path never needs a Gemini client.
	cfg.AI.Enabled = false
	cfg.Coaching.Enabled = false
	if root.SharedFlags.Output != "" {
		cfg.Results.Directory = root.SharedFlags.Output
	}
	if root.SharedFlags.SaveHistory {
		cfg.Results.HistoryEnabled = true
	}

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logging.GetLogger())
	if err != nil {
		root.Log.Fatalf("Error initializing application: %v", err)
	}
	defer c.Close()

	analysis, err := c.Analyzer.CalculateFile(ctx, root.SharedFlags.Input, analyzer.Options{
		BreakdownCSV: breakdownCSV,
		SaveHistory:  root.SharedFlags.SaveHistory,
	})
	if err != nil {
		root.Log.Fatalf("Error calculating %s: %v", root.SharedFlags.Input, err)
	}

	root.Log.Infof("Total emissions: %.2f kg CO2e (%.3f metric tons)",
		analysis.Result.TotalEmissionsKg, analysis.Result.TotalEmissionsTons)
	root.Log.Infof("Results written to %s", analysis.ResultPath)
}
