package classifier

import (
	"context"

	"ecolens/carbon-csv/internal/models"
)

// MockClient is an AIClient for tests. It returns the configured
// classifications or error and records the batches it received.
type MockClient struct {
	Classifications []Classification
	Err             error
	Batches         [][]models.Transaction
}

// Name identifies the client for logging.
func (m *MockClient) Name() string {
	return "mock"
}

// ClassifyBatch returns the configured result for every batch.
func (m *MockClient) ClassifyBatch(ctx context.Context, txs []models.Transaction) ([]Classification, error) {
	m.Batches = append(m.Batches, txs)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Classifications, nil
}
