package classifier

import (
	"context"
	"strings"

	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"
)

// KeywordClient classifies transactions by matching merchant keywords from
// the factors file against the description. It is the offline alternative
// when AI classification is disabled. Matches are reported at medium
// confidence, unmatched descriptions fall to other/low.
type KeywordClient struct {
	hints  map[models.Category][]string
	logger logging.Logger
}

// NewKeywordClient creates a KeywordClient from category keyword hints.
func NewKeywordClient(hints map[models.Category][]string, logger logging.Logger) *KeywordClient {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &KeywordClient{hints: hints, logger: logger}
}

// Name identifies the client for logging.
func (c *KeywordClient) Name() string {
	return "keyword"
}

// ClassifyBatch matches each description against the keyword hints. It never
// fails; every transaction gets a classification.
func (c *KeywordClient) ClassifyBatch(ctx context.Context, txs []models.Transaction) ([]Classification, error) {
	classifications := make([]Classification, 0, len(txs))
	for _, tx := range txs {
		classifications = append(classifications, c.classify(tx.Description))
	}
	return classifications, nil
}

func (c *KeywordClient) classify(description string) Classification {
	description = strings.ToLower(description)

	// Fixed category order keeps results deterministic when keywords from
	// several categories match the same description.
	for _, category := range models.AllCategories() {
		for _, keyword := range c.hints[category] {
			if keyword == "" {
				continue
			}
			if strings.Contains(description, strings.ToLower(keyword)) {
				return Classification{Category: category, Confidence: models.ConfidenceMedium}
			}
		}
	}

	return Classification{Category: models.CategoryOther, Confidence: models.ConfidenceLow}
}
