package emissions

import "math"

// Rounding helpers. Kilograms are reported at 2 decimal places, tons at 3,
// percentages and benchmark ratios at 1.

func round0(v float64) float64 {
	return math.Round(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
