// Package model defines domain types for cashburn transactions and projections.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrValidation is wrapped by every transaction validation failure.
var ErrValidation = errors.New("model: invalid transaction")

// TxType classifies a transaction as money in or money out.
type TxType string

// Transaction types.
const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

// TxStatus describes how certain a transaction is.
type TxStatus string

// Transaction statuses.
const (
	Confirmed TxStatus = "confirmed"
	Pending   TxStatus = "pending"
	Projected TxStatus = "projected"
)

// Valid reports whether s is one of the known transaction statuses.
func (s TxStatus) Valid() bool {
	return s == Confirmed || s == Pending || s == Projected
}

// Transaction is a single dated income or expense entry.
// Amount is always non-negative; direction comes from Type.
// Probability is advisory (0-100) and round-tripped but does not
// weight projections.
type Transaction struct {
	ID          int             `json:"id"`
	Type        TxType          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Status      TxStatus        `json:"status"`
	Probability int             `json:"probability"`
}

// Validate checks every field invariant. The returned error wraps
// ErrValidation and names the offending field.
func (tx Transaction) Validate() error {
	if !tx.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, tx.Type)
	}
	if !tx.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, tx.Status)
	}
	if tx.Amount.IsNegative() {
		return fmt.Errorf("%w: amount %s is negative", ErrValidation, tx.Amount)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrValidation)
	}
	if strings.TrimSpace(tx.Description) == "" {
		return fmt.Errorf("%w: empty description", ErrValidation)
	}
	if tx.Probability < 0 || tx.Probability > 100 {
		return fmt.Errorf("%w: probability %d outside 0-100", ErrValidation, tx.Probability)
	}
	return nil
}

// Signed returns the amount with its direction applied:
// positive for income, negative for expense.
func (tx Transaction) Signed() decimal.Decimal {
	if tx.Type == Expense {
		return tx.Amount.Neg()
	}
	return tx.Amount
}
