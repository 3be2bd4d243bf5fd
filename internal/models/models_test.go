package models

import (
	"testing"
	"time"

	"ecolens/carbon-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tx, err := NewTransaction(date, "WHOLE FOODS", NewMoneyFromFloat(86.12, "USD"))
	require.NoError(t, err)
	assert.Equal(t, "WHOLE FOODS", tx.Description)
	assert.Equal(t, date, tx.Date)

	_, err = NewTransaction(date, "   ", NewMoneyFromFloat(10, "USD"))
	assert.Error(t, err)

	_, err = NewTransaction(date, "FREE LUNCH", ZeroMoney("USD"))
	assert.Error(t, err)

	_, err = NewTransaction(date, "REFUND", NewMoneyFromFloat(-5, "USD"))
	assert.Error(t, err)
}

func TestWithCategory(t *testing.T) {
	tx, err := NewTransaction(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		"UBER TRIP", NewMoneyFromFloat(18.40, "USD"))
	require.NoError(t, err)

	categorized := tx.WithCategory(CategoryGroundTransport, ConfidenceHigh)

	assert.Equal(t, tx.Description, categorized.Description)
	assert.Equal(t, CategoryGroundTransport, categorized.Category)
	assert.Equal(t, ConfidenceHigh, categorized.Confidence)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryAirTravel, ParseCategory("air_travel"))
	assert.Equal(t, CategoryAirTravel, ParseCategory("  Air_Travel "))
	assert.Equal(t, CategoryOther, ParseCategory("jetpacks"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
}

func TestAllCategoriesExcludesFallback(t *testing.T) {
	categories := AllCategories()
	assert.Len(t, categories, 9)
	assert.NotContains(t, categories, CategoryOther)
	for _, category := range categories {
		assert.True(t, category.IsKnown(), "%s should be known", category)
	}
	// The fallback bucket is a member of the closed set too.
	assert.True(t, CategoryOther.IsKnown())
	assert.False(t, Category("jetpacks").IsKnown())
}

func TestParseConfidence(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ParseConfidence("HIGH"))
	assert.Equal(t, ConfidenceMedium, ParseConfidence(" medium "))
	assert.Equal(t, ConfidenceLow, ParseConfidence("low"))
	assert.Equal(t, ConfidenceLow, ParseConfidence("supremely confident"))
}

func TestMoney(t *testing.T) {
	m, err := NewMoneyFromString("425.50", "USD")
	require.NoError(t, err)
	assert.True(t, m.IsPositive())
	assert.Equal(t, "425.50 USD", m.String())
	assert.InDelta(t, 425.50, m.Float64(), 1e-9)

	_, err = NewMoneyFromString("not-a-number", "USD")
	assert.Error(t, err)

	sum, err := m.Add(NewMoneyFromFloat(0.50, "USD"))
	require.NoError(t, err)
	assert.Equal(t, "426.00 USD", sum.String())

	_, err = m.Add(NewMoneyFromFloat(1, "EUR"))
	assert.Error(t, err)

	assert.True(t, ZeroMoney("USD").IsZero())
}

func TestClassificationStats(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	makeCat := func(description string, confidence Confidence) CategorizedTransaction {
		tx, err := NewTransaction(date, description, NewMoneyFromFloat(10, "USD"))
		require.NoError(t, err)
		return tx.WithCategory(CategoryGroceries, confidence)
	}

	stats := NewClassificationStats([]CategorizedTransaction{
		makeCat("a", ConfidenceHigh),
		makeCat("b", ConfidenceHigh),
		makeCat("c", ConfidenceMedium),
		makeCat("d", ConfidenceLow),
	})

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.High)
	assert.Equal(t, 1, stats.Medium)
	assert.Equal(t, 1, stats.Low)
	assert.InDelta(t, 50.0, stats.HighConfidenceRate(), 1e-9)

	assert.Zero(t, ClassificationStats{}.HighConfidenceRate())

	logger := logging.NewMockLogger()
	stats.LogSummary(logger)
	assert.NotEmpty(t, logger.Entries)
}
