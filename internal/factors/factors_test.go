package factors

import (
	"os"
	"path/filepath"
	"testing"

	"ecolens/carbon-csv/internal/carbonerror"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFactorsYAML = `version: "2025.1"
air_travel:
  threshold_usd: 300.0
  domestic_avg_kg: 800.0
  international_avg_kg: 1600.0
ground_transport:
  avg_cost_per_mile_usd: 2.0
  rideshare_per_mile_kg: 0.45
food_restaurant:
  avg_cost_per_meal_usd: 25.0
  avg_meal_kg: 2.5
groceries:
  per_dollar_kg: 0.10
electricity:
  avg_kwh_per_dollar: 7.0
  per_kwh_kg: 0.385
natural_gas:
  avg_therms_per_dollar: 0.8
  per_therm_kg: 5.3
goods_electronics:
  per_dollar_kg: 0.15
goods_clothing:
  per_dollar_kg: 0.20
goods_general:
  per_dollar_kg: 0.12
keyword_hints:
  air_travel: [airline, flight]
  groceries: [grocery, supermarket]
benchmarks:
  domestic_annual_kg: 16000.0
  global_annual_kg: 4000.0
  treaty_target_annual_kg: 2300.0
  regional_annual_kg: 6800.0
`

func writeFactorsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "factors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeFactorsFile(t, validFactorsYAML)

	table, err := NewStore(path, logging.NewMockLogger()).Load()

	require.NoError(t, err)
	assert.Equal(t, "2025.1", table.Version)
	assert.Equal(t, 300.0, table.AirTravel.ThresholdUSD)
	assert.Equal(t, 0.385, table.Electricity.PerKwhKg)
	assert.Equal(t, 0.12, table.GoodsGeneral.PerDollarKg)
	assert.Equal(t, 16000.0, table.Benchmarks.DomesticAnnualKg)
	assert.Equal(t, []string{"airline", "flight"}, table.KeywordHints[models.CategoryAirTravel])
}

func TestLoad_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.yaml"), logging.NewMockLogger())
	_, err := store.Load()
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeFactorsFile(t, "version: [unclosed")
	_, err := NewStore(path, logging.NewMockLogger()).Load()
	assert.Error(t, err)
}

func TestValidate_MissingEntries(t *testing.T) {
	base := func() *Table {
		return &Table{
			Version:          "test",
			AirTravel:        AirTravel{ThresholdUSD: 300, DomesticAvgKg: 800, InternationalAvgKg: 1600},
			GroundTransport:  GroundTransport{AvgCostPerMileUSD: 2, RidesharePerMileKg: 0.45},
			FoodRestaurant:   FoodRestaurant{AvgCostPerMealUSD: 25, AvgMealKg: 2.5},
			Groceries:        PerDollar{PerDollarKg: 0.10},
			Electricity:      Electricity{AvgKwhPerDollar: 7, PerKwhKg: 0.385},
			NaturalGas:       NaturalGas{AvgThermsPerDollar: 0.8, PerThermKg: 5.3},
			GoodsElectronics: PerDollar{PerDollarKg: 0.15},
			GoodsClothing:    PerDollar{PerDollarKg: 0.20},
			GoodsGeneral:     PerDollar{PerDollarKg: 0.12},
			Benchmarks: Benchmarks{
				DomesticAnnualKg:     16000,
				GlobalAnnualKg:       4000,
				TreatyTargetAnnualKg: 2300,
				RegionalAnnualKg:     6800,
			},
		}
	}

	require.NoError(t, base().Validate("factors.yaml"))

	cases := []struct {
		name   string
		mutate func(*Table)
		key    string
	}{
		{"missing version", func(tb *Table) { tb.Version = "" }, "version"},
		{"zero threshold", func(tb *Table) { tb.AirTravel.ThresholdUSD = 0 }, "air_travel.threshold_usd"},
		{"negative meal factor", func(tb *Table) { tb.FoodRestaurant.AvgMealKg = -1 }, "food_restaurant.avg_meal_kg"},
		{"missing general goods", func(tb *Table) { tb.GoodsGeneral.PerDollarKg = 0 }, "goods_general.per_dollar_kg"},
		{"missing benchmark", func(tb *Table) { tb.Benchmarks.GlobalAnnualKg = 0 }, "benchmarks.global_annual_kg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table := base()
			tc.mutate(table)

			err := table.Validate("factors.yaml")

			require.Error(t, err)
			var cfgErr *carbonerror.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.key, cfgErr.Key)
			assert.Contains(t, err.Error(), tc.key)
			assert.Contains(t, err.Error(), "factors.yaml")
		})
	}
}

func TestFindFile_SearchesStandardLocations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "database"), 0750))
	target := filepath.Join(dir, "database", "emission_factors.yaml")
	require.NoError(t, os.WriteFile(target, []byte(validFactorsYAML), 0600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		require.NoError(t, os.Chdir(wd))
	}()

	store := NewStore("emission_factors.yaml", logging.NewMockLogger())
	found, err := store.FindFile()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("database", "emission_factors.yaml"), found)
}
