package classifier

import (
	"context"

	"ecolens/carbon-csv/internal/carbonerror"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"
)

// Classifier applies the batch classification contract and its degraded-mode
// policy: when the client fails to produce a usable structured batch, every
// transaction in the batch is assigned other/low and the pipeline proceeds.
// A malformed response never aborts a run.
type Classifier struct {
	client AIClient
	logger logging.Logger
}

// New creates a Classifier around the given client. A nil client means every
// batch degrades to the fallback category.
func New(client AIClient, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Classifier{client: client, logger: logger}
}

// Classify attaches a category and confidence to every transaction. The
// returned flag reports whether the batch fallback was applied. The fallback
// is batch-level: one unparseable response degrades the whole batch.
func (c *Classifier) Classify(ctx context.Context, txs []models.Transaction) ([]models.CategorizedTransaction, bool) {
	if len(txs) == 0 {
		return []models.CategorizedTransaction{}, false
	}

	if c.client == nil {
		c.logger.Warn("No classification client configured, using fallback category")
		return c.fallback(txs), true
	}

	classifications, err := c.client.ClassifyBatch(ctx, txs)
	if err != nil {
		cerr := &carbonerror.ClassificationError{BatchSize: len(txs), Err: err}
		c.logger.WithError(cerr).Warn("Classification failed, degrading batch to fallback category",
			logging.Field{Key: "client", Value: c.client.Name()})
		return c.fallback(txs), true
	}
	if len(classifications) != len(txs) {
		// The AIClient contract requires one entry per transaction;
		// anything else is treated like a parse failure.
		c.logger.Warn("Classification count mismatch, degrading batch to fallback category",
			logging.Field{Key: "expected", Value: len(txs)},
			logging.Field{Key: "got", Value: len(classifications)})
		return c.fallback(txs), true
	}

	categorized := make([]models.CategorizedTransaction, 0, len(txs))
	for i, tx := range txs {
		categorized = append(categorized, tx.WithCategory(classifications[i].Category, classifications[i].Confidence))
	}

	models.NewClassificationStats(categorized).LogSummary(c.logger)
	return categorized, false
}

func (c *Classifier) fallback(txs []models.Transaction) []models.CategorizedTransaction {
	categorized := make([]models.CategorizedTransaction, 0, len(txs))
	for _, tx := range txs {
		categorized = append(categorized, tx.WithCategory(models.CategoryOther, models.ConfidenceLow))
	}
	return categorized
}
