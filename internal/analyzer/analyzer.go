// Package analyzer sequences the full pipeline: ingest, classify, calculate,
// benchmark, coach, persist. Data flows strictly forward; each stage consumes
// the previous stage's output exactly once.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"ecolens/carbon-csv/internal/classifier"
	"ecolens/carbon-csv/internal/coach"
	"ecolens/carbon-csv/internal/emissions"
	"ecolens/carbon-csv/internal/factors"
	"ecolens/carbon-csv/internal/ingest"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"
	"ecolens/carbon-csv/internal/report"
	"ecolens/carbon-csv/internal/resultstore"
)

// defaultPeriodDays is assumed when the observed period cannot be derived,
// which only happens for inputs where every date is missing after validation.
const defaultPeriodDays = 30

// Recommender produces coaching recommendations. Satisfied by coach.Coach;
// tests substitute their own.
type Recommender interface {
	Recommend(ctx context.Context, result emissions.Result, bench emissions.BenchmarkComparison) (coach.Coaching, error)
}

// Options control one analysis run.
type Options struct {
	SkipCoaching bool
	BreakdownCSV string // optional CSV export path
	SaveHistory  bool
}

// Analysis is the combined, persisted output of one run.
type Analysis struct {
	SourceFile   string                        `json:"source_file"`
	AnalysisDate time.Time                     `json:"analysis_date"`
	Period       ingest.Summary                `json:"period_info"`
	Result       emissions.Result              `json:"result"`
	Benchmarks   emissions.BenchmarkComparison `json:"benchmarks"`
	Coaching     *coach.Coaching               `json:"coaching,omitempty"`
	Usage        classifier.Usage              `json:"api_usage"`
	CostUSD      float64                       `json:"estimated_cost_usd"`

	// ResultPath is where the JSON document was written; not serialized.
	ResultPath string `json:"-"`
}

// Analyzer runs the pipeline. The coach and history store are optional.
type Analyzer struct {
	logger     logging.Logger
	reader     *ingest.Reader
	classifier *classifier.Classifier
	table      *factors.Table
	coach      Recommender
	writer     *report.Writer
	store      *resultstore.Store
	usage      *classifier.Usage
}

// New wires an Analyzer. reader, classifier, table and writer are required;
// coach and store may be nil to disable those stages.
func New(logger logging.Logger, reader *ingest.Reader, cls *classifier.Classifier,
	table *factors.Table, rec Recommender, writer *report.Writer,
	store *resultstore.Store, usage *classifier.Usage) *Analyzer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Analyzer{
		logger:     logger,
		reader:     reader,
		classifier: cls,
		table:      table,
		coach:      rec,
		writer:     writer,
		store:      store,
		usage:      usage,
	}
}

// AnalyzeFile runs the complete pipeline on a transaction CSV file.
func (a *Analyzer) AnalyzeFile(ctx context.Context, filePath string, opts Options) (*Analysis, error) {
	transactions, summary, err := a.reader.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("no valid transactions found in %s", filePath)
	}

	categorized, degraded := a.classifier.Classify(ctx, transactions)

	return a.finish(ctx, filePath, summary, categorized, degraded, opts)
}

// CalculateFile runs the pipeline on a pre-categorized CSV file, skipping
// classification and coaching entirely.
func (a *Analyzer) CalculateFile(ctx context.Context, filePath string, opts Options) (*Analysis, error) {
	categorized, summary, err := a.reader.ReadCategorizedFile(filePath)
	if err != nil {
		return nil, err
	}
	if len(categorized) == 0 {
		return nil, fmt.Errorf("no valid transactions found in %s", filePath)
	}

	opts.SkipCoaching = true
	return a.finish(ctx, filePath, summary, categorized, false, opts)
}

func (a *Analyzer) finish(ctx context.Context, filePath string, summary ingest.Summary,
	categorized []models.CategorizedTransaction, degraded bool, opts Options) (*Analysis, error) {

	result := emissions.Calculate(a.table, categorized)
	result.Degraded = degraded

	a.logger.Info("Emission calculation complete",
		logging.Field{Key: "total_kg", Value: result.TotalEmissionsKg},
		logging.Field{Key: "categories", Value: len(result.Breakdown)},
		logging.Field{Key: "degraded", Value: degraded})

	periodDays := summary.PeriodDays
	if periodDays < 1 {
		periodDays = defaultPeriodDays
	}

	bench, err := emissions.Compare(result.TotalEmissionsKg, periodDays, a.table.Benchmarks)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		SourceFile:   filePath,
		AnalysisDate: time.Now(),
		Period:       summary,
		Result:       result,
		Benchmarks:   bench,
	}

	if a.coach != nil && !opts.SkipCoaching {
		coaching, err := a.coach.Recommend(ctx, result, bench)
		if err != nil {
			// Coaching is advisory; a transport failure must not lose
			// the completed calculation.
			a.logger.WithError(err).Warn("Coaching unavailable, continuing without recommendations")
		} else {
			analysis.Coaching = &coaching
		}
	}

	if a.usage != nil {
		analysis.Usage = *a.usage
		analysis.CostUSD = a.usage.EstimatedCostUSD()
	}

	path, err := a.writer.WriteJSON(analysis, filePath, analysis.AnalysisDate)
	if err != nil {
		return nil, err
	}
	analysis.ResultPath = path

	if opts.BreakdownCSV != "" {
		if err := a.writer.WriteBreakdownCSV(result, opts.BreakdownCSV); err != nil {
			return nil, err
		}
	}

	if a.store != nil && opts.SaveHistory {
		_, err := a.store.Save(resultstore.Run{
			CreatedAt:          analysis.AnalysisDate,
			SourceFile:         filePath,
			PeriodDays:         periodDays,
			TotalEmissionsKg:   result.TotalEmissionsKg,
			AnnualProjectionKg: bench.AnnualProjectionKg,
			Degraded:           degraded,
		}, analysis)
		if err != nil {
			return nil, err
		}
	}

	return analysis, nil
}
