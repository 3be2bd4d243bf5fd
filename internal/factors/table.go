// Package factors loads and validates the emission factors reference table.
// The table is read once per calculation session and treated as immutable
// afterwards; concurrent reads are safe.
package factors

import (
	"ecolens/carbon-csv/internal/carbonerror"
	"ecolens/carbon-csv/internal/models"
)

// AirTravel holds the flight estimation constants. The dollar threshold is a
// proxy for trip class (domestic vs international), not a distance model;
// flight cost is the only signal available in the data.
type AirTravel struct {
	ThresholdUSD       float64 `yaml:"threshold_usd"`
	DomesticAvgKg      float64 `yaml:"domestic_avg_kg"`
	InternationalAvgKg float64 `yaml:"international_avg_kg"`
}

// GroundTransport converts spend into estimated miles, then miles into kg.
// The rideshare factor already accounts for the driver's empty return leg.
type GroundTransport struct {
	AvgCostPerMileUSD  float64 `yaml:"avg_cost_per_mile_usd"`
	RidesharePerMileKg float64 `yaml:"rideshare_per_mile_kg"`
}

// FoodRestaurant converts spend into estimated meal count, then meals into kg.
type FoodRestaurant struct {
	AvgCostPerMealUSD float64 `yaml:"avg_cost_per_meal_usd"`
	AvgMealKg         float64 `yaml:"avg_meal_kg"`
}

// PerDollar is a flat linear spend-to-kg ratio.
type PerDollar struct {
	PerDollarKg float64 `yaml:"per_dollar_kg"`
}

// Electricity converts spend into estimated kWh, then applies the grid factor.
type Electricity struct {
	AvgKwhPerDollar float64 `yaml:"avg_kwh_per_dollar"`
	PerKwhKg        float64 `yaml:"per_kwh_kg"`
}

// NaturalGas converts spend into estimated therms, then applies the gas factor.
type NaturalGas struct {
	AvgThermsPerDollar float64 `yaml:"avg_therms_per_dollar"`
	PerThermKg         float64 `yaml:"per_therm_kg"`
}

// Benchmarks holds the fixed annual reference levels used by the benchmark
// comparator, in kg CO2e per year.
type Benchmarks struct {
	DomesticAnnualKg     float64 `yaml:"domestic_annual_kg"`
	GlobalAnnualKg       float64 `yaml:"global_annual_kg"`
	TreatyTargetAnnualKg float64 `yaml:"treaty_target_annual_kg"`
	RegionalAnnualKg     float64 `yaml:"regional_annual_kg"`
}

// Table is the complete, versioned emission factors reference table.
type Table struct {
	Version          string          `yaml:"version"`
	AirTravel        AirTravel       `yaml:"air_travel"`
	GroundTransport  GroundTransport `yaml:"ground_transport"`
	FoodRestaurant   FoodRestaurant  `yaml:"food_restaurant"`
	Groceries        PerDollar       `yaml:"groceries"`
	Electricity      Electricity     `yaml:"electricity"`
	NaturalGas       NaturalGas      `yaml:"natural_gas"`
	GoodsElectronics PerDollar       `yaml:"goods_electronics"`
	GoodsClothing    PerDollar       `yaml:"goods_clothing"`
	GoodsGeneral     PerDollar       `yaml:"goods_general"`

	// KeywordHints maps categories to merchant keywords. Not used by the
	// calculator; the offline keyword classifier consumes them.
	KeywordHints map[models.Category][]string `yaml:"keyword_hints"`

	Benchmarks Benchmarks `yaml:"benchmarks"`
}

// Validate checks that every entry the calculator can reach resolves to
// usable constants. A missing entry is a fatal ConfigurationError: lookups
// must never silently produce zero emissions.
func (t *Table) Validate(file string) error {
	missing := func(key string) error {
		return &carbonerror.ConfigurationError{Key: key, File: file}
	}

	if t.Version == "" {
		return missing("version")
	}
	if t.AirTravel.ThresholdUSD <= 0 {
		return missing("air_travel.threshold_usd")
	}
	if t.AirTravel.DomesticAvgKg <= 0 {
		return missing("air_travel.domestic_avg_kg")
	}
	if t.AirTravel.InternationalAvgKg <= 0 {
		return missing("air_travel.international_avg_kg")
	}
	if t.GroundTransport.AvgCostPerMileUSD <= 0 {
		return missing("ground_transport.avg_cost_per_mile_usd")
	}
	if t.GroundTransport.RidesharePerMileKg <= 0 {
		return missing("ground_transport.rideshare_per_mile_kg")
	}
	if t.FoodRestaurant.AvgCostPerMealUSD <= 0 {
		return missing("food_restaurant.avg_cost_per_meal_usd")
	}
	if t.FoodRestaurant.AvgMealKg <= 0 {
		return missing("food_restaurant.avg_meal_kg")
	}
	if t.Groceries.PerDollarKg <= 0 {
		return missing("groceries.per_dollar_kg")
	}
	if t.Electricity.AvgKwhPerDollar <= 0 {
		return missing("electricity.avg_kwh_per_dollar")
	}
	if t.Electricity.PerKwhKg <= 0 {
		return missing("electricity.per_kwh_kg")
	}
	if t.NaturalGas.AvgThermsPerDollar <= 0 {
		return missing("natural_gas.avg_therms_per_dollar")
	}
	if t.NaturalGas.PerThermKg <= 0 {
		return missing("natural_gas.per_therm_kg")
	}
	if t.GoodsElectronics.PerDollarKg <= 0 {
		return missing("goods_electronics.per_dollar_kg")
	}
	if t.GoodsClothing.PerDollarKg <= 0 {
		return missing("goods_clothing.per_dollar_kg")
	}
	// The general-goods entry backs the catch-all path; without it the
	// calculator has no total fallback.
	if t.GoodsGeneral.PerDollarKg <= 0 {
		return missing("goods_general.per_dollar_kg")
	}

	if t.Benchmarks.DomesticAnnualKg <= 0 {
		return missing("benchmarks.domestic_annual_kg")
	}
	if t.Benchmarks.GlobalAnnualKg <= 0 {
		return missing("benchmarks.global_annual_kg")
	}
	if t.Benchmarks.TreatyTargetAnnualKg <= 0 {
		return missing("benchmarks.treaty_target_annual_kg")
	}
	if t.Benchmarks.RegionalAnnualKg <= 0 {
		return missing("benchmarks.regional_annual_kg")
	}

	return nil
}
