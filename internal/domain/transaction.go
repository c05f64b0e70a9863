package domain

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Transaction is one record of the statement table after normalization.
// Optional fields that could not be determined are nil, never a zero
// sentinel, so reconciliation can tell "missing" from "zero".
type Transaction struct {
	Date        *civil.Date // nil when the raw date was blank or unparsable
	Description string      // never empty; defaults to "Unspecified"
	Amount      *float64    // rounded to 2 decimals; nil when absent
	Category    string      // always one of the canonical category labels
	Account     string      // optional free text, empty when absent

	// Derived during reconciliation.
	Balance float64
	Anomaly bool
}

// Month returns the YYYY-MM bucket for the transaction, or "" when the
// date is absent.
func (t *Transaction) Month() string {
	if t.Date == nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", t.Date.Year, int(t.Date.Month))
}

// MonthlySummary aggregates one calendar month of dated transactions.
type MonthlySummary struct {
	Month        string
	Transactions int
	TotalIncome  float64
	TotalExpense float64
	Net          float64
}

// CategoryBreakdown is the amount total for one (month, category) pair.
type CategoryBreakdown struct {
	Month    string
	Category string
	Amount   float64
}
