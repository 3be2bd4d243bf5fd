// Package benchmark compares a known emission total against reference values
package benchmark

import (
	"github.com/spf13/cobra"

	"ecolens/carbon-csv/cmd/root"
	"ecolens/carbon-csv/internal/emissions"
	"ecolens/carbon-csv/internal/factors"
	"ecolens/carbon-csv/internal/logging"
)

var (
	totalKg float64
	days    int
)

// Cmd represents the benchmark command
var Cmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Project a total onto a year and compare against benchmarks",
	Long: `Benchmark annualizes a known emission total over the given period and
compares the projection against the configured reference values.`,
	Run: benchmarkFunc,
}

func init() {
	Cmd.Flags().Float64Var(&totalKg, "total-kg", 0, "Total emissions in kg CO2e (required)")
	Cmd.Flags().IntVar(&days, "days", 30, "Number of days the total covers")
	_ = Cmd.MarkFlagRequired("total-kg")
}

func benchmarkFunc(cmd *cobra.Command, args []string) {
	table, err := factors.NewStore(root.Cfg.Factors.File, logging.GetLogger()).Load()
	if err != nil {
		root.Log.Fatalf("Error loading emission factors: %v", err)
	}

	comparison, err := emissions.Compare(totalKg, days, table.Benchmarks)
	if err != nil {
		root.Log.Fatalf("Error computing benchmark comparison: %v", err)
	}

	root.Log.Infof("Annual projection: %.0f kg CO2e", comparison.AnnualProjectionKg)
	root.Log.Infof("vs domestic average (%.0f kg): %.1f%%",
		comparison.References.DomesticAnnualKg, comparison.VsDomestic)
	root.Log.Infof("vs global average (%.0f kg): %.1f%%",
		comparison.References.GlobalAnnualKg, comparison.VsGlobal)
	root.Log.Infof("vs treaty target (%.0f kg): %.1f%%",
		comparison.References.TreatyTargetAnnualKg, comparison.VsTreatyTarget)
	root.Log.Infof("vs regional average (%.0f kg): %.1f%%",
		comparison.References.RegionalAnnualKg, comparison.VsRegional)
}
