package reconcile

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/statement-cleaner/internal/domain"
)

// DefaultAnomalyStdDevs is the default k in the mean + k*stddev anomaly
// threshold.
const DefaultAnomalyStdDevs = 3.0

// Engine runs the table-wide reconciliation pass over a fully normalized
// transaction table: sort, gap interpolation, running balance, anomaly
// flagging, and time-bucketed aggregation.
type Engine struct {
	anomalyStdDevs float64
}

func NewEngine(anomalyStdDevs float64) *Engine {
	if anomalyStdDevs <= 0 {
		anomalyStdDevs = DefaultAnomalyStdDevs
	}
	return &Engine{anomalyStdDevs: anomalyStdDevs}
}

// Reconcile mutates txs in place: sorts by date, fills amount gaps,
// computes running balances, and flags anomalies. Balances and anomaly
// statistics see the interpolated amounts.
func (e *Engine) Reconcile(txs []*domain.Transaction) {
	e.SortByDate(txs)
	e.Interpolate(txs)
	e.ComputeBalances(txs)
	e.FlagAnomalies(txs)
}

// SortByDate orders the table by date ascending, stable, with absent
// dates last.
func (e *Engine) SortByDate(txs []*domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		di, dj := txs[i].Date, txs[j].Date
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
}

// Interpolate fills absent amounts by linear interpolation between the
// nearest present neighbors, by row position. Gaps before the first or
// after the last present value take that value. Nothing is filled when
// fewer than two amounts are present.
func (e *Engine) Interpolate(txs []*domain.Transaction) {
	var present []int
	for i, tx := range txs {
		if tx.Amount != nil {
			present = append(present, i)
		}
	}
	if len(present) < 2 {
		return
	}

	first := *txs[present[0]].Amount
	for i := 0; i < present[0]; i++ {
		v := first
		txs[i].Amount = &v
	}

	for k := 0; k+1 < len(present); k++ {
		lo, hi := present[k], present[k+1]
		loV, hiV := *txs[lo].Amount, *txs[hi].Amount
		span := float64(hi - lo)
		for i := lo + 1; i < hi; i++ {
			v := round2(loV + (hiV-loV)*float64(i-lo)/span)
			txs[i].Amount = &v
		}
	}

	last := *txs[present[len(present)-1]].Amount
	for i := present[len(present)-1] + 1; i < len(txs); i++ {
		v := last
		txs[i].Amount = &v
	}
}

// ComputeBalances assigns the cumulative amount sum to each record in
// table order, treating absent amounts as 0 for summation only. The
// running total is rounded to 2 decimals at each step.
func (e *Engine) ComputeBalances(txs []*domain.Transaction) {
	running := decimal.Zero
	for _, tx := range txs {
		if tx.Amount != nil {
			running = running.Add(decimal.NewFromFloat(*tx.Amount))
		}
		tx.Balance = running.Round(2).InexactFloat64()
	}
}

// FlagAnomalies marks records whose absolute amount exceeds
// mean + k*stddev of the absolute values of all present amounts.
// The standard deviation is population (ddof=0). Records with absent
// amounts are never flagged; with no present amounts nothing is flagged.
func (e *Engine) FlagAnomalies(txs []*domain.Transaction) {
	var abs []float64
	for _, tx := range txs {
		if tx.Amount != nil {
			abs = append(abs, math.Abs(*tx.Amount))
		}
	}
	if len(abs) == 0 {
		for _, tx := range txs {
			tx.Anomaly = false
		}
		return
	}

	var sum float64
	for _, v := range abs {
		sum += v
	}
	mean := sum / float64(len(abs))

	var sq float64
	for _, v := range abs {
		d := v - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(abs)))

	threshold := mean + e.anomalyStdDevs*stddev
	for _, tx := range txs {
		tx.Anomaly = tx.Amount != nil && math.Abs(*tx.Amount) > threshold
	}
}

// MonthlySummaries groups records with a present date by calendar month
// and returns per-month counts and income/expense/net totals, ordered by
// month ascending.
func (e *Engine) MonthlySummaries(txs []*domain.Transaction) []domain.MonthlySummary {
	byMonth := make(map[string]*domain.MonthlySummary)
	for _, tx := range txs {
		month := tx.Month()
		if month == "" {
			continue
		}
		s, ok := byMonth[month]
		if !ok {
			s = &domain.MonthlySummary{Month: month}
			byMonth[month] = s
		}
		s.Transactions++
		if tx.Amount == nil {
			continue
		}
		if *tx.Amount > 0 {
			s.TotalIncome += *tx.Amount
		} else if *tx.Amount < 0 {
			s.TotalExpense += *tx.Amount
		}
		s.Net += *tx.Amount
	}

	out := make([]domain.MonthlySummary, 0, len(byMonth))
	for _, s := range byMonth {
		s.TotalIncome = round2(s.TotalIncome)
		s.TotalExpense = round2(s.TotalExpense)
		s.Net = round2(s.Net)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryBreakdown sums present amounts per (month, category) pair over
// records with a present date, ordered by month then category. Every
// observed pair gets a row, even when all its amounts are absent.
func (e *Engine) CategoryBreakdown(txs []*domain.Transaction) []domain.CategoryBreakdown {
	type key struct{ month, category string }
	sums := make(map[key]float64)
	for _, tx := range txs {
		month := tx.Month()
		if month == "" {
			continue
		}
		k := key{month, tx.Category}
		if _, ok := sums[k]; !ok {
			sums[k] = 0
		}
		if tx.Amount != nil {
			sums[k] += *tx.Amount
		}
	}

	out := make([]domain.CategoryBreakdown, 0, len(sums))
	for k, v := range sums {
		out = append(out, domain.CategoryBreakdown{
			Month:    k.month,
			Category: k.category,
			Amount:   round2(v),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
