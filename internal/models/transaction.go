// Package models provides the data structures shared across the analysis
// pipeline.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Transaction is a single validated financial event. It is immutable once
// created; classification attaches a category by producing a new
// CategorizedTransaction value so the raw record stays available for audit.
type Transaction struct {
	Date        time.Time `json:"date" yaml:"date"`
	Description string    `json:"description" yaml:"description"`
	Amount      Money     `json:"amount" yaml:"amount"`
}

// NewTransaction validates and creates a Transaction. The description must be
// non-blank and the amount strictly positive.
func NewTransaction(date time.Time, description string, amount Money) (Transaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Transaction{}, fmt.Errorf("description cannot be empty")
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("amount must be positive, got %s", amount.Amount.String())
	}
	return Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
	}, nil
}

// CategorizedTransaction is a Transaction with its assigned category and the
// classifier's confidence attached.
type CategorizedTransaction struct {
	Transaction
	Category   Category   `json:"category" yaml:"category"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// WithCategory returns a new CategorizedTransaction carrying the given
// category and confidence. The receiver is not modified.
func (t Transaction) WithCategory(category Category, confidence Confidence) CategorizedTransaction {
	return CategorizedTransaction{
		Transaction: t,
		Category:    category,
		Confidence:  confidence,
	}
}
