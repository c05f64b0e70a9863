package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/statement-cleaner/internal/domain"
)

func amt(v float64) *float64 { return &v }

func testDate(y, m, d int) *civil.Date {
	cd := civil.Date{Year: y, Month: time.Month(m), Day: d}
	return &cd
}

func TestWriter_WriteAll(t *testing.T) {
	dir := t.TempDir()
	txs := []*domain.Transaction{
		{Date: testDate(2024, 3, 15), Description: "grocery shopping", Amount: amt(45), Category: "Groceries", Balance: 45},
		{Date: nil, Description: "Unspecified", Amount: nil, Category: "Unspecified"},
	}
	summary := []domain.MonthlySummary{
		{Month: "2024-03", Transactions: 1, TotalIncome: 45, Net: 45},
	}
	breakdown := []domain.CategoryBreakdown{
		{Month: "2024-03", Category: "Groceries", Amount: 45},
	}

	paths, err := NewWriter(dir).WriteAll(txs, summary, breakdown)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if len(paths) != 5 {
		t.Fatalf("got %d output files, want 5", len(paths))
	}

	cleaned := readFile(t, filepath.Join(dir, CleanedFile))
	if !strings.HasPrefix(cleaned, "Date,Description,Amount,Category,Account,Balance,Anomaly") {
		t.Errorf("cleaned header = %q", firstLine(cleaned))
	}
	if !strings.Contains(cleaned, "2024-03-15,grocery shopping,45.00,Groceries,,45.00,false") {
		t.Errorf("cleaned row missing, got:\n%s", cleaned)
	}

	complete := readFile(t, filepath.Join(dir, CompleteFile))
	if strings.Contains(complete, "Unspecified") {
		t.Errorf("complete table kept a row with absent fields:\n%s", complete)
	}

	sum := readFile(t, filepath.Join(dir, MonthlySummaryFile))
	if !strings.HasPrefix(sum, "month,transactions,total_income,total_expense,net") {
		t.Errorf("summary header = %q", firstLine(sum))
	}
	if !strings.Contains(sum, "2024-03,1,45.00,0.00,45.00") {
		t.Errorf("summary row missing, got:\n%s", sum)
	}

	bd := readFile(t, filepath.Join(dir, BreakdownFile))
	if !strings.HasPrefix(bd, "month,category,amount_sum") {
		t.Errorf("breakdown header = %q", firstLine(bd))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
