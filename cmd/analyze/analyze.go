// Package analyze handles the full analysis pipeline command
package analyze

import (
	"context"

	"github.com/spf13/cobra"

	"ecolens/carbon-csv/cmd/root"
	"ecolens/carbon-csv/internal/analyzer"
	"ecolens/carbon-csv/internal/container"
	"ecolens/carbon-csv/internal/logging"
)

var (
	skipCoaching bool
	breakdownCSV string
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a transaction CSV and estimate its carbon footprint",
	Long: `Analyze reads a transaction CSV file, classifies each transaction into an
emission category, estimates emissions per category, compares the annualized
total against reference benchmarks and writes the full result as JSON.`,
	Run: analyzeFunc,
}

func init() {
	Cmd.Flags().BoolVar(&skipCoaching, "skip-coaching", false, "Skip AI coaching recommendations")
	Cmd.Flags().StringVar(&breakdownCSV, "breakdown-csv", "", "Also export the category breakdown to this CSV file")
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required")
	}

	cfg := root.Cfg
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

	runCtx, cancel := context.WithTimeout(ctx, c.RequestTimeout())
	defer cancel()

	analysis, err := c.Analyzer.AnalyzeFile(runCtx, root.SharedFlags.Input, analyzer.Options{
		SkipCoaching: skipCoaching,
		BreakdownCSV: breakdownCSV,
		SaveHistory:  root.SharedFlags.SaveHistory,
	})
	if err != nil {
		root.Log.Fatalf("Error analyzing %s: %v", root.SharedFlags.Input, err)
	}

	root.Log.Infof("Total emissions: %.2f kg CO2e (%.3f metric tons)",
		analysis.Result.TotalEmissionsKg, analysis.Result.TotalEmissionsTons)
	root.Log.Infof("Annual projection: %.0f kg CO2e (%.1f%% of the domestic average)",
		analysis.Benchmarks.AnnualProjectionKg, analysis.Benchmarks.VsDomestic)
	if analysis.Result.Degraded {
		root.Log.Warn("Classification was degraded; emissions reflect fallback categories")
	}
	root.Log.Infof("Results written to %s", analysis.ResultPath)
}
