// Package ingest reads transaction CSV files into validated Transaction
// records. Rows that fail validation are logged and skipped; ingestion only
// fails when the file itself is unreadable or missing required columns.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ecolens/carbon-csv/internal/carbonerror"
	"ecolens/carbon-csv/internal/dateutils"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Currency assumed for all amounts in the input files.
const Currency = "USD"

// Row maps one CSV line. The category column is optional; when present it
// marks a pre-categorized file that can skip classification.
type Row struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Confidence  string `csv:"confidence"`
}

// Summary describes one ingestion run.
type Summary struct {
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	PeriodDays        int             `json:"period_days"`
	RejectedRows      int             `json:"rejected_rows"`
}

// Reader parses transaction CSV files.
type Reader struct {
	logger logging.Logger
}

// NewReader creates a Reader.
func NewReader(logger logging.Logger) *Reader {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Reader{logger: logger}
}

// SetDelimiter configures the CSV delimiter used for reading.
func SetDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		reader := csv.NewReader(in)
		reader.Comma = delim
		return reader
	})
}

var requiredColumns = []string{"date", "description", "amount"}

// ReadFile parses a CSV file into validated transactions plus an ingestion
// summary. Invalid rows (non-positive amount, blank description, unparseable
// date) are logged and skipped.
func (r *Reader) ReadFile(filePath string) ([]models.Transaction, Summary, error) {
	r.logger.Info("Reading transaction CSV file",
		logging.Field{Key: "file", Value: filePath})

	if err := r.checkColumns(filePath); err != nil {
		return nil, Summary{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, Summary{}, fmt.Errorf("error parsing CSV file: %w", err)
	}

	transactions, rejected := r.convertRows(rows)

	summary := summarize(transactions, rejected)
	r.logger.Info("Ingestion complete",
		logging.Field{Key: "transactions", Value: summary.TotalTransactions},
		logging.Field{Key: "rejected", Value: summary.RejectedRows},
		logging.Field{Key: "period_days", Value: summary.PeriodDays})

	return transactions, summary, nil
}

// ReadCategorizedFile parses a pre-categorized CSV file. Rows must carry a
// category column; unknown labels coerce to "other". A missing confidence
// column defaults to high since the categories were supplied by the user.
func (r *Reader) ReadCategorizedFile(filePath string) ([]models.CategorizedTransaction, Summary, error) {
	transactions, summary, err := r.ReadFile(filePath)
	if err != nil {
		return nil, Summary{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, Summary{}, fmt.Errorf("error parsing CSV file: %w", err)
	}

	// Re-run validation row by row so categories line up with the rows
	// that survived it.
	categorized := make([]models.CategorizedTransaction, 0, len(transactions))
	for i, row := range rows {
		tx, err := r.convertRow(row, i)
		if err != nil {
			continue
		}
		confidence := models.ConfidenceHigh
		if strings.TrimSpace(row.Confidence) != "" {
			confidence = models.ParseConfidence(row.Confidence)
		}
		categorized = append(categorized, tx.WithCategory(models.ParseCategory(row.Category), confidence))
	}

	return categorized, summary, nil
}

// checkColumns verifies that the header contains the required columns before
// handing the file to gocsv, which would silently zero missing fields.
func (r *Reader) checkColumns(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns %v, found %v", missing, header)
	}
	return nil
}

func (r *Reader) convertRows(rows []Row) ([]models.Transaction, int) {
	transactions := make([]models.Transaction, 0, len(rows))
	rejected := 0

	for i, row := range rows {
		tx, err := r.convertRow(row, i)
		if err != nil {
			rejected++
			r.logger.WithError(err).Warn("Skipping invalid row")
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, rejected
}

func (r *Reader) convertRow(row Row, index int) (models.Transaction, error) {
	// +2 accounts for the header line and 1-based numbering.
	rowNum := index + 2

	date, err := dateutils.ParseDate(row.Date)
	if err != nil {
		return models.Transaction{}, &carbonerror.ValidationError{Row: rowNum, Field: "date", Reason: err.Error()}
	}

	amount, err := models.NewMoneyFromString(strings.TrimSpace(row.Amount), Currency)
	if err != nil {
		return models.Transaction{}, &carbonerror.ValidationError{Row: rowNum, Field: "amount", Reason: err.Error()}
	}
	if !amount.IsPositive() {
		return models.Transaction{}, &carbonerror.ValidationError{Row: rowNum, Field: "amount", Reason: "must be positive"}
	}

	tx, err := models.NewTransaction(date, row.Description, amount)
	if err != nil {
		return models.Transaction{}, &carbonerror.ValidationError{Row: rowNum, Field: "description", Reason: err.Error()}
	}
	return tx, nil
}

func summarize(transactions []models.Transaction, rejected int) Summary {
	summary := Summary{
		TotalTransactions: len(transactions),
		TotalAmount:       decimal.Zero,
		AverageAmount:     decimal.Zero,
		RejectedRows:      rejected,
	}
	if len(transactions) == 0 {
		return summary
	}

	dates := make([]time.Time, 0, len(transactions))
	for _, tx := range transactions {
		summary.TotalAmount = summary.TotalAmount.Add(tx.Amount.Amount)
		dates = append(dates, tx.Date)
	}
	summary.AverageAmount = summary.TotalAmount.Div(decimal.NewFromInt(int64(len(transactions)))).Round(2)
	summary.TotalAmount = summary.TotalAmount.Round(2)

	summary.StartDate, summary.EndDate = minMax(dates)
	summary.PeriodDays = dateutils.PeriodDays(dates)
	return summary
}

func minMax(dates []time.Time) (time.Time, time.Time) {
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max
}
