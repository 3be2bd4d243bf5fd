package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadFile_ValidTransactions(t *testing.T) {
	path := writeCSV(t, `date,description,amount
2025-06-01,UNITED AIRLINES,425.50
2025-06-15,WHOLE FOODS,86.12
2025-06-30,UBER TRIP,18.40
`)

	reader := NewReader(logging.NewMockLogger())
	transactions, summary, err := reader.ReadFile(path)

	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, "UNITED AIRLINES", transactions[0].Description)
	assert.Equal(t, "425.50", transactions[0].Amount.Amount.StringFixed(2))

	assert.Equal(t, 3, summary.TotalTransactions)
	assert.Equal(t, 0, summary.RejectedRows)
	assert.Equal(t, "530.02", summary.TotalAmount.StringFixed(2))
	assert.Equal(t, "176.67", summary.AverageAmount.StringFixed(2))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), summary.StartDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), summary.EndDate)
	assert.Equal(t, 30, summary.PeriodDays)
}

func TestReadFile_SkipsInvalidRows(t *testing.T) {
	path := writeCSV(t, `date,description,amount
2025-06-01,GOOD ROW,10.00
2025-06-02,,15.00
2025-06-03,NEGATIVE,-5.00
2025-06-04,ZERO,0.00
not-a-date,BAD DATE,20.00
2025-06-05,BAD AMOUNT,abc
2025-06-06,ANOTHER GOOD ROW,30.00
`)

	logger := logging.NewMockLogger()
	reader := NewReader(logger)
	transactions, summary, err := reader.ReadFile(path)

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "GOOD ROW", transactions[0].Description)
	assert.Equal(t, "ANOTHER GOOD ROW", transactions[1].Description)
	assert.Equal(t, 5, summary.RejectedRows)

	// Each rejection is logged at warn level.
	assert.Len(t, logger.EntriesByLevel("WARN"), 5)
}

func TestReadFile_MissingRequiredColumns(t *testing.T) {
	path := writeCSV(t, `when,merchant,total
2025-06-01,SOMEWHERE,10.00
`)

	reader := NewReader(logging.NewMockLogger())
	_, _, err := reader.ReadFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "date")
}

func TestReadFile_NonexistentFile(t *testing.T) {
	reader := NewReader(logging.NewMockLogger())
	_, _, err := reader.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadFile_SingleDayPeriod(t *testing.T) {
	path := writeCSV(t, `date,description,amount
2025-06-15,MORNING COFFEE,4.50
2025-06-15,LUNCH,12.00
`)

	reader := NewReader(logging.NewMockLogger())
	_, summary, err := reader.ReadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.PeriodDays)
}

func TestReadCategorizedFile(t *testing.T) {
	path := writeCSV(t, `date,description,amount,category,confidence
2025-06-01,UNITED AIRLINES,425.50,air_travel,high
2025-06-02,MYSTERY SHOP,10.00,not_a_category,medium
2025-06-03,NO CONFIDENCE,20.00,groceries,
`)

	reader := NewReader(logging.NewMockLogger())
	categorized, summary, err := reader.ReadCategorizedFile(path)

	require.NoError(t, err)
	require.Len(t, categorized, 3)
	assert.Equal(t, 3, summary.TotalTransactions)

	assert.Equal(t, models.CategoryAirTravel, categorized[0].Category)
	assert.Equal(t, models.ConfidenceHigh, categorized[0].Confidence)

	// Unknown labels coerce to the fallback category.
	assert.Equal(t, models.CategoryOther, categorized[1].Category)
	assert.Equal(t, models.ConfidenceMedium, categorized[1].Confidence)

	// Missing confidence defaults to high for user-supplied categories.
	assert.Equal(t, models.CategoryGroceries, categorized[2].Category)
	assert.Equal(t, models.ConfidenceHigh, categorized[2].Confidence)
}

func TestReadCategorizedFile_SkipsInvalidRowsInStep(t *testing.T) {
	path := writeCSV(t, `date,description,amount,category
2025-06-01,VALID,10.00,groceries
bad-date,INVALID,10.00,groceries
2025-06-03,ALSO VALID,20.00,electricity
`)

	reader := NewReader(logging.NewMockLogger())
	categorized, _, err := reader.ReadCategorizedFile(path)

	require.NoError(t, err)
	require.Len(t, categorized, 2)
	assert.Equal(t, models.CategoryGroceries, categorized[0].Category)
	assert.Equal(t, models.CategoryElectricity, categorized[1].Category)
}
