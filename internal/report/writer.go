// Package report persists analysis results as JSON documents and CSV
// breakdown exports.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ecolens/carbon-csv/internal/emissions"
	"ecolens/carbon-csv/internal/logging"

	"github.com/gocarina/gocsv"
)

// File permissions for results.
const (
	permReportFile = 0644
	permDirectory  = 0750
)

// Writer persists analysis output under a results directory.
type Writer struct {
	dir    string
	logger logging.Logger
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Writer{dir: dir, logger: logger}
}

// WriteJSON saves the analysis document as indented JSON. The filename is
// derived from the source file and the analysis timestamp:
// carbon_analysis_<stem>_<timestamp>.json. Returns the written path.
func (w *Writer) WriteJSON(doc interface{}, sourceFile string, at time.Time) (string, error) {
	if err := os.MkdirAll(w.dir, permDirectory); err != nil {
		return "", fmt.Errorf("error creating results directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	name := fmt.Sprintf("carbon_analysis_%s_%s.json", stem, at.Format("2006-01-02_15-04-05"))
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	if err := os.WriteFile(path, data, permReportFile); err != nil {
		return "", fmt.Errorf("error writing analysis result: %w", err)
	}

	w.logger.Info("Analysis result saved",
		logging.Field{Key: "file", Value: path})
	return path, nil
}

// breakdownRow is the CSV projection of one category breakdown.
type breakdownRow struct {
	Category    string  `csv:"category"`
	EmissionsKg float64 `csv:"emissions_kg"`
	Percentage  float64 `csv:"percentage"`
	Count       int     `csv:"count"`
	TotalSpent  string  `csv:"total_spent"`
}

// WriteBreakdownCSV exports the per-category breakdown to a CSV file,
// keeping the result's emission ordering.
func (w *Writer) WriteBreakdownCSV(result emissions.Result, csvFile string) error {
	if err := os.MkdirAll(filepath.Dir(csvFile), permDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	rows := make([]breakdownRow, 0, len(result.Breakdown))
	for _, b := range result.Breakdown {
		rows = append(rows, breakdownRow{
			Category:    b.Category.String(),
			EmissionsKg: b.EmissionsKg,
			Percentage:  b.Percentage,
			Count:       b.Count,
			TotalSpent:  b.TotalSpent.StringFixed(2),
		})
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing breakdown CSV: %w", err)
	}

	w.logger.Info("Breakdown exported",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "categories", Value: len(rows)})
	return nil
}
