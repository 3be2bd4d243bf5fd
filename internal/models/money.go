package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with its currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a Money from a decimal amount.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// NewMoneyFromFloat creates a Money from a float64 amount.
// Use sparingly, float64 can introduce precision errors.
func NewMoneyFromFloat(amount float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency}
}

// NewMoneyFromString creates a Money by parsing a decimal string.
func NewMoneyFromString(amount, currency string) (Money, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string '%s': %w", amount, err)
	}
	return Money{Amount: dec, Currency: currency}, nil
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// IsPositive returns true if the amount is strictly positive.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Add adds another Money value. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Float64 returns the amount as a float64 for emission arithmetic.
func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}

// String renders the amount with two decimal places and the currency code.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
