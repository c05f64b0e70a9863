package tabular

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/dvloznov/statement-cleaner/internal/domain"
)

// Output file names, regenerated in full on every run.
const (
	CleanedFile        = "cleaned_bank_statements.csv"
	MonthlySummaryFile = "monthly_summary.csv"
	BreakdownFile      = "category_breakdown_by_month.csv"
	CompleteFile       = "complete_bank_statements.csv"
	CompleteSortedFile = "complete_bank_statements_sorted.csv"
)

type cleanedRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Account     string `csv:"Account"`
	Balance     string `csv:"Balance"`
	Anomaly     bool   `csv:"Anomaly"`
}

type summaryRow struct {
	Month        string `csv:"month"`
	Transactions int    `csv:"transactions"`
	TotalIncome  string `csv:"total_income"`
	TotalExpense string `csv:"total_expense"`
	Net          string `csv:"net"`
}

type breakdownRow struct {
	Month    string `csv:"month"`
	Category string `csv:"category"`
	Amount   string `csv:"amount_sum"`
}

// Writer serializes the reconciled table and its aggregates into an
// output directory. Dates are written in ISO YYYY-MM-DD form, amounts
// with two decimals.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteAll writes every output file and returns their paths.
func (w *Writer) WriteAll(
	txs []*domain.Transaction,
	summary []domain.MonthlySummary,
	breakdown []domain.CategoryBreakdown,
) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %q: %w", w.dir, err)
	}

	var paths []string
	writers := []struct {
		name  string
		write func(string) error
	}{
		{CleanedFile, func(p string) error { return w.writeCleaned(p, txs) }},
		{MonthlySummaryFile, func(p string) error { return w.writeSummary(p, summary) }},
		{BreakdownFile, func(p string) error { return w.writeBreakdown(p, breakdown) }},
		{CompleteFile, func(p string) error { return w.writeCleaned(p, completeRows(txs)) }},
		{CompleteSortedFile, func(p string) error { return w.writeCleaned(p, sortedByDate(completeRows(txs))) }},
	}
	for _, out := range writers {
		p := filepath.Join(w.dir, out.name)
		if err := out.write(p); err != nil {
			return nil, fmt.Errorf("write %s: %w", out.name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (w *Writer) writeCleaned(path string, txs []*domain.Transaction) error {
	rows := make([]cleanedRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, cleanedRow{
			Date:        formatDate(tx),
			Description: tx.Description,
			Amount:      formatOptional(tx.Amount),
			Category:    tx.Category,
			Account:     tx.Account,
			Balance:     formatMoney(tx.Balance),
			Anomaly:     tx.Anomaly,
		})
	}
	return marshalCSV(path, &rows)
}

func (w *Writer) writeSummary(path string, summary []domain.MonthlySummary) error {
	rows := make([]summaryRow, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, summaryRow{
			Month:        s.Month,
			Transactions: s.Transactions,
			TotalIncome:  formatMoney(s.TotalIncome),
			TotalExpense: formatMoney(s.TotalExpense),
			Net:          formatMoney(s.Net),
		})
	}
	return marshalCSV(path, &rows)
}

func (w *Writer) writeBreakdown(path string, breakdown []domain.CategoryBreakdown) error {
	rows := make([]breakdownRow, 0, len(breakdown))
	for _, b := range breakdown {
		rows = append(rows, breakdownRow{
			Month:    b.Month,
			Category: b.Category,
			Amount:   formatMoney(b.Amount),
		})
	}
	return marshalCSV(path, &rows)
}

func marshalCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.MarshalFile(rows, f); err != nil {
		return err
	}
	return f.Close()
}

// completeRows filters to records with every field present, applied
// after amount interpolation. Description and category are always
// present by contract, so date and amount are the deciding fields.
func completeRows(txs []*domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date != nil && tx.Amount != nil {
			out = append(out, tx)
		}
	}
	return out
}

func sortedByDate(txs []*domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(*out[j].Date)
	})
	return out
}

func formatDate(tx *domain.Transaction) string {
	if tx.Date == nil {
		return ""
	}
	return tx.Date.String()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatMoney(*v)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
