package models

import "ecolens/carbon-csv/internal/logging"

// ClassificationStats summarizes classifier output for one batch. Callers
// inspect it to see how much of the result rests on degraded classifications.
type ClassificationStats struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// NewClassificationStats tallies the confidence distribution of a batch.
func NewClassificationStats(txs []CategorizedTransaction) ClassificationStats {
	var cs ClassificationStats
	for _, tx := range txs {
		cs.Total++
		switch tx.Confidence {
		case ConfidenceHigh:
			cs.High++
		case ConfidenceMedium:
			cs.Medium++
		default:
			cs.Low++
		}
	}
	return cs
}

// HighConfidenceRate returns the share of high-confidence classifications as
// a percentage. Zero transactions yield 0.0.
func (cs ClassificationStats) HighConfidenceRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.High) / float64(cs.Total) * 100.0
}

// LogSummary logs the confidence distribution.
func (cs ClassificationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}
	logger.Info("Classification summary",
		logging.Field{Key: "total", Value: cs.Total},
		logging.Field{Key: "high", Value: cs.High},
		logging.Field{Key: "medium", Value: cs.Medium},
		logging.Field{Key: "low", Value: cs.Low},
		logging.Field{Key: "high_confidence_rate", Value: cs.HighConfidenceRate()},
	)
}
