// Package emissions implements the emission calculation core: the
// per-transaction estimator, the breakdown calculator and the benchmark
// comparator. Everything here is a pure function of its inputs; no I/O, no
// external calls.
package emissions

import (
	"math"

	"ecolens/carbon-csv/internal/factors"
	"ecolens/carbon-csv/internal/models"
)

// Estimate converts one categorized spend into estimated kg CO2e using the
// category's conversion rule. It returns a finite, non-negative value for any
// finite non-negative amount; a zero or negative amount yields zero emissions
// rather than an error. Unknown categories take the general-goods path.
//
// These are spend-based approximations, not physical measurements. Air travel
// in particular uses the ticket price as a proxy for trip class.
func Estimate(table *factors.Table, category models.Category, amount float64) float64 {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}

	switch category {
	case models.CategoryAirTravel:
		// Price threshold splits domestic from international trips.
		if amount > table.AirTravel.ThresholdUSD {
			return table.AirTravel.InternationalAvgKg
		}
		return table.AirTravel.DomesticAvgKg

	case models.CategoryGroundTransport:
		if table.GroundTransport.AvgCostPerMileUSD <= 0 {
			return 0
		}
		estimatedMiles := amount / table.GroundTransport.AvgCostPerMileUSD
		return estimatedMiles * table.GroundTransport.RidesharePerMileKg

	case models.CategoryFoodRestaurant:
		if table.FoodRestaurant.AvgCostPerMealUSD <= 0 {
			return 0
		}
		estimatedMeals := amount / table.FoodRestaurant.AvgCostPerMealUSD
		return estimatedMeals * table.FoodRestaurant.AvgMealKg

	case models.CategoryGroceries:
		return amount * table.Groceries.PerDollarKg

	case models.CategoryElectricity:
		estimatedKwh := amount * table.Electricity.AvgKwhPerDollar
		return estimatedKwh * table.Electricity.PerKwhKg

	case models.CategoryNaturalGas:
		estimatedTherms := amount * table.NaturalGas.AvgThermsPerDollar
		return estimatedTherms * table.NaturalGas.PerThermKg

	case models.CategoryGoodsElectronics:
		return amount * table.GoodsElectronics.PerDollarKg

	case models.CategoryGoodsClothing:
		return amount * table.GoodsClothing.PerDollarKg

	default:
		// goods_general, other and anything unrecognized.
		return amount * table.GoodsGeneral.PerDollarKg
	}
}
