package emissions

import (
	"fmt"

	"ecolens/carbon-csv/internal/factors"
)

// BenchmarkComparison expresses an annualized emission projection as
// percentage ratios against fixed annual reference levels. A ratio of 100
// means exactly at the reference; ratios are unbounded above zero.
type BenchmarkComparison struct {
	AnnualProjectionKg float64            `json:"annual_projection_kg"`
	References         factors.Benchmarks `json:"reference_values"`
	VsDomestic         float64            `json:"vs_domestic"`
	VsGlobal           float64            `json:"vs_global"`
	VsTreatyTarget     float64            `json:"vs_treaty_target"`
	VsRegional         float64            `json:"vs_regional"`
}

// Compare annualizes totalEmissionsKg over periodDays and computes the ratio
// to each reference. periodDays must be at least 1: a single-day period is
// valid, zero or negative is an input error, not a silent clamp.
func Compare(totalEmissionsKg float64, periodDays int, refs factors.Benchmarks) (BenchmarkComparison, error) {
	if periodDays < 1 {
		return BenchmarkComparison{}, fmt.Errorf("period days must be at least 1, got %d", periodDays)
	}

	annualProjection := totalEmissionsKg / float64(periodDays) * 365

	ratio := func(reference float64) float64 {
		return round1(annualProjection / reference * 100)
	}

	return BenchmarkComparison{
		AnnualProjectionKg: round0(annualProjection),
		References:         refs,
		VsDomestic:         ratio(refs.DomesticAnnualKg),
		VsGlobal:           ratio(refs.GlobalAnnualKg),
		VsTreatyTarget:     ratio(refs.TreatyTargetAnnualKg),
		VsRegional:         ratio(refs.RegionalAnnualKg),
	}, nil
}
