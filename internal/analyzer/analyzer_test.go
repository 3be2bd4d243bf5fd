package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ecolens/carbon-csv/internal/classifier"
	"ecolens/carbon-csv/internal/coach"
	"ecolens/carbon-csv/internal/emissions"
	"ecolens/carbon-csv/internal/factors"
	"ecolens/carbon-csv/internal/ingest"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"
	"ecolens/carbon-csv/internal/report"
	"ecolens/carbon-csv/internal/resultstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *factors.Table {
	return &factors.Table{
		Version:          "2025.1",
		AirTravel:        factors.AirTravel{ThresholdUSD: 300, DomesticAvgKg: 800, InternationalAvgKg: 1600},
		GroundTransport:  factors.GroundTransport{AvgCostPerMileUSD: 2.0, RidesharePerMileKg: 0.45},
		FoodRestaurant:   factors.FoodRestaurant{AvgCostPerMealUSD: 25.0, AvgMealKg: 2.5},
		Groceries:        factors.PerDollar{PerDollarKg: 0.10},
		Electricity:      factors.Electricity{AvgKwhPerDollar: 7.0, PerKwhKg: 0.385},
		NaturalGas:       factors.NaturalGas{AvgThermsPerDollar: 0.8, PerThermKg: 5.3},
		GoodsElectronics: factors.PerDollar{PerDollarKg: 0.15},
		GoodsClothing:    factors.PerDollar{PerDollarKg: 0.20},
		GoodsGeneral:     factors.PerDollar{PerDollarKg: 0.12},
		Benchmarks: factors.Benchmarks{
			DomesticAnnualKg:     16000,
			GlobalAnnualKg:       4000,
			TreatyTargetAnnualKg: 2300,
			RegionalAnnualKg:     6800,
		},
	}
}

type stubRecommender struct {
	coaching coach.Coaching
	err      error
	calls    int
}

func (s *stubRecommender) Recommend(ctx context.Context, result emissions.Result, bench emissions.BenchmarkComparison) (coach.Coaching, error) {
	s.calls++
	if s.err != nil {
		return coach.Coaching{}, s.err
	}
	return s.coaching, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newTestAnalyzer(t *testing.T, client classifier.AIClient, rec Recommender, store *resultstore.Store) *Analyzer {
	t.Helper()
	logger := logging.NewMockLogger()
	writer := report.NewWriter(filepath.Join(t.TempDir(), "results"), logger)
	return New(logger, ingest.NewReader(logger), classifier.New(client, logger),
		testTable(), rec, writer, store, &classifier.Usage{})
}

const sampleCSV = `date,description,amount
2025-06-01,UNITED AIRLINES,425.50
2025-06-15,UBER TRIP,50.00
2025-06-30,WHOLE FOODS,100.00
`

func TestAnalyzeFile_EndToEnd(t *testing.T) {
	client := &classifier.MockClient{Classifications: []classifier.Classification{
		{Category: models.CategoryAirTravel, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroundTransport, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroceries, Confidence: models.ConfidenceMedium},
	}}
	rec := &stubRecommender{coaching: coach.Coaching{
		OverallStrategy:         "Fly less",
		RealisticAnnualTargetKg: 12000,
	}}
	a := newTestAnalyzer(t, client, rec, nil)

	analysis, err := a.AnalyzeFile(context.Background(), writeCSV(t, sampleCSV), Options{})

	require.NoError(t, err)
	assert.False(t, analysis.Result.Degraded)
	// 1600 + 11.25 + 10
	assert.InDelta(t, 1621.25, analysis.Result.TotalEmissionsKg, 0.01)
	assert.Equal(t, 30, analysis.Period.PeriodDays)

	// Annualized over the observed 30-day period.
	assert.InDelta(t, 1621.25/30*365, analysis.Benchmarks.AnnualProjectionKg, 1.0)

	require.NotNil(t, analysis.Coaching)
	assert.Equal(t, "Fly less", analysis.Coaching.OverallStrategy)
	assert.Equal(t, 1, rec.calls)

	// The JSON document was written where ResultPath says.
	data, err := os.ReadFile(analysis.ResultPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "total_emissions_kg")
	assert.Contains(t, string(data), "annual_projection_kg")
}

func TestAnalyzeFile_DegradedBatchStillCompletes(t *testing.T) {
	client := &classifier.MockClient{Err: errors.New("model down")}
	a := newTestAnalyzer(t, client, nil, nil)

	analysis, err := a.AnalyzeFile(context.Background(), writeCSV(t, sampleCSV), Options{})

	require.NoError(t, err)
	assert.True(t, analysis.Result.Degraded)

	// Everything lands in the fallback bucket at the general-goods rate.
	other, ok := analysis.Result.BreakdownFor(models.CategoryOther)
	require.True(t, ok)
	assert.Equal(t, 3, other.Count)
	assert.InDelta(t, 575.50*0.12, analysis.Result.TotalEmissionsKg, 0.01)
}

func TestAnalyzeFile_SkipCoaching(t *testing.T) {
	client := &classifier.MockClient{Classifications: []classifier.Classification{
		{Category: models.CategoryAirTravel, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroundTransport, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroceries, Confidence: models.ConfidenceMedium},
	}}
	rec := &stubRecommender{}
	a := newTestAnalyzer(t, client, rec, nil)

	analysis, err := a.AnalyzeFile(context.Background(), writeCSV(t, sampleCSV), Options{SkipCoaching: true})

	require.NoError(t, err)
	assert.Nil(t, analysis.Coaching)
	assert.Zero(t, rec.calls)
}

func TestAnalyzeFile_CoachingFailureIsNonFatal(t *testing.T) {
	client := &classifier.MockClient{Classifications: []classifier.Classification{
		{Category: models.CategoryAirTravel, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroundTransport, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroceries, Confidence: models.ConfidenceMedium},
	}}
	rec := &stubRecommender{err: errors.New("network timeout")}
	a := newTestAnalyzer(t, client, rec, nil)

	analysis, err := a.AnalyzeFile(context.Background(), writeCSV(t, sampleCSV), Options{})

	require.NoError(t, err)
	assert.Nil(t, analysis.Coaching)
	assert.Positive(t, analysis.Result.TotalEmissionsKg)
}

func TestAnalyzeFile_NoValidTransactions(t *testing.T) {
	a := newTestAnalyzer(t, &classifier.MockClient{}, nil, nil)
	path := writeCSV(t, `date,description,amount
bad-date,ONLY ROW,10.00
`)

	_, err := a.AnalyzeFile(context.Background(), path, Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid transactions")
}

func TestAnalyzeFile_SavesHistory(t *testing.T) {
	store, err := resultstore.Open(filepath.Join(t.TempDir(), "history.db"), logging.NewMockLogger())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	client := &classifier.MockClient{Classifications: []classifier.Classification{
		{Category: models.CategoryAirTravel, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroundTransport, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroceries, Confidence: models.ConfidenceMedium},
	}}
	a := newTestAnalyzer(t, client, nil, store)

	analysis, err := a.AnalyzeFile(context.Background(), writeCSV(t, sampleCSV), Options{SaveHistory: true})
	require.NoError(t, err)

	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 30, runs[0].PeriodDays)
	assert.InDelta(t, analysis.Result.TotalEmissionsKg, runs[0].TotalEmissionsKg, 1e-9)
}

func TestCalculateFile_PreCategorized(t *testing.T) {
	a := newTestAnalyzer(t, nil, &stubRecommender{}, nil)
	path := writeCSV(t, `date,description,amount,category,confidence
2025-06-01,UNITED AIRLINES,425.50,air_travel,high
2025-06-30,WHOLE FOODS,100.00,groceries,high
`)

	analysis, err := a.CalculateFile(context.Background(), path, Options{})

	require.NoError(t, err)
	assert.False(t, analysis.Result.Degraded)
	assert.InDelta(t, 1610.0, analysis.Result.TotalEmissionsKg, 0.01)

	// The offline path never asks for coaching.
	assert.Nil(t, analysis.Coaching)
}

func TestAnalyzeFile_BreakdownCSVExport(t *testing.T) {
	client := &classifier.MockClient{Classifications: []classifier.Classification{
		{Category: models.CategoryAirTravel, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroundTransport, Confidence: models.ConfidenceHigh},
		{Category: models.CategoryGroceries, Confidence: models.ConfidenceMedium},
	}}
	a := newTestAnalyzer(t, client, nil, nil)
	csvPath := filepath.Join(t.TempDir(), "breakdown.csv")

	_, err := a.AnalyzeFile(context.Background(), writeCSV(t, sampleCSV), Options{BreakdownCSV: csvPath})

	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "air_travel")
}
