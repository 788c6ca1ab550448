// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseRecord represents a single expense row from the ledger.
// Records are immutable once constructed: the loader builds the full set at
// startup and nothing mutates them afterwards.
type ExpenseRecord struct {
	ID          int             // stable position id assigned at load time
	Description string          // free text, never empty
	DueDay      *int            // day-of-month, nil if the source left it blank
	Amount      decimal.Decimal // monetary value, required
	Status      string          // free text ("pago", "pendente", ...), "" if absent
	Reference   string          // ledger period the record belongs to (month name)
	Category    string          // lower-cased category label, never empty
}

// HasStatus reports whether the record's status equals the given value,
// ignoring case and surrounding whitespace.
func (r ExpenseRecord) HasStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), strings.TrimSpace(status))
}

// ParseAmount parses a string amount into a decimal.Decimal. It accepts the
// comma decimal separator used by the source spreadsheets and strips currency
// noise. The boolean is false when the value is not a usable number.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.TrimPrefix(amount, "R$")
	amount = strings.ReplaceAll(amount, " ", "")
	if strings.Contains(amount, ",") {
		// Brazilian format: 1.234,56 -> 1234.56
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	}
	if amount == "" {
		return decimal.Zero, false
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return dec, true
}
