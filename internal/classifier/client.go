// Package classifier assigns spending categories to transactions. The actual
// classification capability sits behind the AIClient interface; this package
// owns the batch contract and the degraded-result policy around it.
package classifier

import (
	"context"

	"ecolens/carbon-csv/internal/models"
)

// Classification is the label a client returns for one transaction.
type Classification struct {
	Category   models.Category
	Confidence models.Confidence
}

// AIClient classifies a batch of transactions. Implementations must return
// exactly one Classification per input transaction, in input order, or an
// error; partial results are not part of the contract.
type AIClient interface {
	ClassifyBatch(ctx context.Context, txs []models.Transaction) ([]Classification, error)

	// Name identifies the client for logging.
	Name() string
}
