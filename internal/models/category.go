package models

import "strings"

// Category is one of the closed set of spending categories used for emission
// estimation. Unknown labels are coerced to CategoryOther, never dropped.
type Category string

const (
	CategoryAirTravel        Category = "air_travel"
	CategoryGroundTransport  Category = "ground_transport"
	CategoryFoodRestaurant   Category = "food_restaurant"
	CategoryGroceries        Category = "groceries"
	CategoryElectricity      Category = "electricity"
	CategoryNaturalGas       Category = "natural_gas"
	CategoryGoodsElectronics Category = "goods_electronics"
	CategoryGoodsClothing    Category = "goods_clothing"
	CategoryGoodsGeneral     Category = "goods_general"

	// CategoryOther is the catch-all bucket for unknown or unclassified
	// transactions. It is estimated with the general-goods factor.
	CategoryOther Category = "other"
)

// AllCategories returns the closed category set, excluding the fallback.
func AllCategories() []Category {
	return []Category{
		CategoryAirTravel,
		CategoryGroundTransport,
		CategoryFoodRestaurant,
		CategoryGroceries,
		CategoryElectricity,
		CategoryNaturalGas,
		CategoryGoodsElectronics,
		CategoryGoodsClothing,
		CategoryGoodsGeneral,
	}
}

// ParseCategory normalizes a label into the closed category set. Blank or
// unrecognized labels map to CategoryOther.
func ParseCategory(label string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(label)))
	if c.IsKnown() {
		return c
	}
	return CategoryOther
}

// IsKnown returns true if c is a member of the closed set (the fallback
// bucket included).
func (c Category) IsKnown() bool {
	switch c {
	case CategoryAirTravel, CategoryGroundTransport, CategoryFoodRestaurant,
		CategoryGroceries, CategoryElectricity, CategoryNaturalGas,
		CategoryGoodsElectronics, CategoryGoodsClothing, CategoryGoodsGeneral,
		CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Confidence is the classifier's self-reported confidence for one
// transaction.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence normalizes a confidence label. Anything unrecognized maps
// to ConfidenceLow, which is also what the batch fallback assigns.
func ParseConfidence(label string) Confidence {
	switch Confidence(strings.ToLower(strings.TrimSpace(label))) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
