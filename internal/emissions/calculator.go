package emissions

import (
	"sort"

	"ecolens/carbon-csv/internal/factors"
	"ecolens/carbon-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Item is one transaction's contribution to a category breakdown.
type Item struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	EmissionsKg float64         `json:"emissions_kg"`
}

// CategoryBreakdown aggregates the emissions of one category.
type CategoryBreakdown struct {
	Category    models.Category `json:"category"`
	EmissionsKg float64         `json:"emissions_kg"`
	Percentage  float64         `json:"percentage"`
	Count       int             `json:"count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	Items       []Item          `json:"items"`
}

// Result is the calculation's root output. Breakdown is ordered by
// descending emissions, ties broken by the order categories were first
// encountered in the input.
type Result struct {
	TotalEmissionsKg   float64                    `json:"total_emissions_kg"`
	TotalEmissionsTons float64                    `json:"total_emissions_tons"`
	Breakdown          []CategoryBreakdown        `json:"breakdown"`
	FactorsVersion     string                     `json:"factors_version"`
	Degraded           bool                       `json:"degraded"`
	Classification     models.ClassificationStats `json:"classification"`
}

// BreakdownFor returns the breakdown for a category, if present.
func (r Result) BreakdownFor(category models.Category) (CategoryBreakdown, bool) {
	for _, b := range r.Breakdown {
		if b.Category == category {
			return b, true
		}
	}
	return CategoryBreakdown{}, false
}

// Calculate folds a list of categorized transactions into a Result using the
// given factors table. It is deterministic: identical input (same order)
// always yields identical output, category ordering included. Empty input is
// valid and produces zero totals with an empty breakdown.
func Calculate(table *factors.Table, txs []models.CategorizedTransaction) Result {
	type accumulator struct {
		emissionsKg float64
		totalSpent  decimal.Decimal
		items       []Item
	}

	buckets := make(map[models.Category]*accumulator)
	var order []models.Category
	var totalEmissions float64

	for _, tx := range txs {
		category := tx.Category
		if category == "" {
			category = models.CategoryOther
		}

		emissions := Estimate(table, category, tx.Amount.Float64())
		totalEmissions += emissions

		bucket, exists := buckets[category]
		if !exists {
			bucket = &accumulator{totalSpent: decimal.Zero}
			buckets[category] = bucket
			order = append(order, category)
		}
		bucket.emissionsKg += emissions
		bucket.totalSpent = bucket.totalSpent.Add(tx.Amount.Amount)
		bucket.items = append(bucket.items, Item{
			Description: tx.Description,
			Amount:      tx.Amount.Amount,
			EmissionsKg: round2(emissions),
		})
	}

	breakdown := make([]CategoryBreakdown, 0, len(order))
	for _, category := range order {
		bucket := buckets[category]

		// When the grand total is zero every share is defined as 0.0;
		// an all-zero result must not divide by zero.
		percentage := 0.0
		if totalEmissions > 0 {
			percentage = round1(bucket.emissionsKg / totalEmissions * 100)
		}

		breakdown = append(breakdown, CategoryBreakdown{
			Category:    category,
			EmissionsKg: round2(bucket.emissionsKg),
			Percentage:  percentage,
			Count:       len(bucket.items),
			TotalSpent:  bucket.totalSpent.Round(2),
			Items:       bucket.items,
		})
	}

	// Highest-emitting category first. The stable sort keeps the
	// first-encounter order for equal emissions, so the output is
	// reproducible for identical input.
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].EmissionsKg > breakdown[j].EmissionsKg
	})

	return Result{
		TotalEmissionsKg:   round2(totalEmissions),
		TotalEmissionsTons: round3(totalEmissions / 1000),
		Breakdown:          breakdown,
		FactorsVersion:     table.Version,
		Classification:     models.NewClassificationStats(txs),
	}
}
