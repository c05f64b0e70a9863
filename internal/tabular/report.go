package tabular

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-cleaner/internal/domain"
)

// MissingReport summarizes absent cells in the raw table before any
// transformation runs.
type MissingReport struct {
	Rows      int
	Columns   []string
	PerColumn map[string]int
	Percent   float64
}

// BuildMissingReport counts absent cells per column across the table.
func BuildMissingReport(raw *RawTable) *MissingReport {
	r := &MissingReport{
		Rows:      len(raw.Rows),
		Columns:   raw.Columns,
		PerColumn: make(map[string]int, len(raw.Columns)),
	}
	total := 0
	for _, row := range raw.Rows {
		for _, col := range raw.Columns {
			if row[col] == "" {
				r.PerColumn[col]++
				total++
			}
		}
	}
	if cells := r.Rows * len(raw.Columns); cells > 0 {
		r.Percent = 100 * float64(total) / float64(cells)
	}
	return r
}

// Log emits the missing-data diagnostics through the structured logger.
func (r *MissingReport) Log(log zerolog.Logger) {
	ev := log.Info().
		Int("rows", r.Rows).
		Float64("missing_pct", r.Percent)
	for _, col := range r.Columns {
		ev = ev.Int("missing_"+col, r.PerColumn[col])
	}
	ev.Msg("Missing-data report")
}

// PrintSample prints up to n cleaned rows to standard output.
func PrintSample(txs []*domain.Transaction, n int) {
	fmt.Println("Sample cleaned rows:")
	for i, tx := range txs {
		if i >= n {
			break
		}
		fmt.Printf("  %-10s  %-30s  %10s  %-15s  %10s  anomaly=%v\n",
			formatDate(tx), tx.Description, formatOptional(tx.Amount),
			tx.Category, formatMoney(tx.Balance), tx.Anomaly)
	}
}

// PrintTotals prints overall income, expense, and final balance.
func PrintTotals(txs []*domain.Transaction) {
	var income, expense float64
	for _, tx := range txs {
		if tx.Amount == nil {
			continue
		}
		if *tx.Amount > 0 {
			income += *tx.Amount
		} else if *tx.Amount < 0 {
			expense += *tx.Amount
		}
	}
	final := 0.0
	if len(txs) > 0 {
		final = txs[len(txs)-1].Balance
	}
	fmt.Printf("\nTotal Income: %.2f\n", income)
	fmt.Printf("Total Expenses: %.2f\n", expense)
	fmt.Printf("Final Balance: %.2f\n", final)
}
