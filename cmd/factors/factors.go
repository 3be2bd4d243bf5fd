// Package factors inspects and validates the emission factors file
package factors

import (
	"github.com/spf13/cobra"

	"ecolens/carbon-csv/cmd/root"
	"ecolens/carbon-csv/internal/factors"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"
)

var factorsFile string

// Cmd represents the factors command
var Cmd = &cobra.Command{
	Use:   "factors",
	Short: "Validate and display the emission factors table",
	Long: `Factors loads the emission factors YAML file, validates that every
category has a positive factor and prints a summary of the loaded values.`,
	Run: factorsFunc,
}

func init() {
	Cmd.Flags().StringVar(&factorsFile, "file", "", "Emission factors file (defaults to the configured one)")
}

func factorsFunc(cmd *cobra.Command, args []string) {
	file := factorsFile
	if file == "" {
		file = root.Cfg.Factors.File
	}

	table, err := factors.NewStore(file, logging.GetLogger()).Load()
	if err != nil {
		root.Log.Fatalf("Emission factors validation failed: %v", err)
	}

	root.Log.Infof("Emission factors version %s are valid", table.Version)
	root.Log.Infof("Air travel: domestic %.0f kg, international %.0f kg (threshold $%.0f)",
		table.AirTravel.DomesticAvgKg, table.AirTravel.InternationalAvgKg, table.AirTravel.ThresholdUSD)
	root.Log.Infof("Ground transport: %.2f kg/mile at $%.2f/mile",
		table.GroundTransport.RidesharePerMileKg, table.GroundTransport.AvgCostPerMileUSD)
	root.Log.Infof("Food: %.1f kg/meal at $%.0f/meal",
		table.FoodRestaurant.AvgMealKg, table.FoodRestaurant.AvgCostPerMealUSD)
	root.Log.Infof("Groceries: %.2f kg/$", table.Groceries.PerDollarKg)
	root.Log.Infof("Electricity: %.3f kg/kWh at %.1f kWh/$",
		table.Electricity.PerKwhKg, table.Electricity.AvgKwhPerDollar)
	root.Log.Infof("Natural gas: %.1f kg/therm", table.NaturalGas.PerThermKg)
	root.Log.Infof("Goods: electronics %.2f, clothing %.2f, general %.2f kg/$",
		table.GoodsElectronics.PerDollarKg, table.GoodsClothing.PerDollarKg, table.GoodsGeneral.PerDollarKg)

	hinted := 0
	for _, category := range models.AllCategories() {
		if len(table.KeywordHints[category]) > 0 {
			hinted++
		}
	}
	root.Log.Infof("Keyword hints cover %d of %d categories", hinted, len(models.AllCategories()))
}
