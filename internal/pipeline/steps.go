package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvloznov/statement-cleaner/internal/domain"
	"github.com/dvloznov/statement-cleaner/internal/gcsexport"
	"github.com/dvloznov/statement-cleaner/internal/logger"
	"github.com/dvloznov/statement-cleaner/internal/normalize"
	"github.com/dvloznov/statement-cleaner/internal/reconcile"
	"github.com/dvloznov/statement-cleaner/internal/tabular"
)

// Step represents a single step in the cleaning pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State holds the shared state across all pipeline steps.
type State struct {
	RunID     string
	InputPath string
	OutputDir string

	Raw          *tabular.RawTable
	Transactions []*domain.Transaction
	Summary      []domain.MonthlySummary
	Breakdown    []domain.CategoryBreakdown
	OutputFiles  []string
}

// Step 1: LoadTableStep reads the raw tabular input.
type LoadTableStep struct{}

func (s *LoadTableStep) Execute(ctx context.Context, state *State) error {
	raw, err := tabular.ReadCSV(state.InputPath)
	if err != nil {
		return err
	}
	state.Raw = raw
	log := logger.FromContext(ctx)
	log.Info().
		Str("input", state.InputPath).
		Int("rows", len(raw.Rows)).
		Str("charset", raw.Charset).
		Msg("Loaded raw table")
	return nil
}

// Step 2: ReportMissingStep reports missing-data statistics before any
// transformation, regardless of outcome.
type ReportMissingStep struct{}

func (s *ReportMissingStep) Execute(ctx context.Context, state *State) error {
	tabular.BuildMissingReport(state.Raw).Log(logger.FromContext(ctx))
	return nil
}

// Step 3: NormalizeColumnsStep applies the per-column repair rules.
// Per-value failures degrade to absent and are counted, never returned.
type NormalizeColumnsStep struct {
	Dates      *normalize.DateNormalizer
	Categories *normalize.CategoryResolver
}

func (s *NormalizeColumnsStep) Execute(ctx context.Context, state *State) error {
	txs := make([]*domain.Transaction, 0, len(state.Raw.Rows))
	var badDates, badAmounts int
	for _, row := range state.Raw.Rows {
		date := s.Dates.Normalize(row["Date"])
		if date == nil && strings.TrimSpace(row["Date"]) != "" {
			badDates++
		}
		amount := normalize.Amount(row["Amount"])
		if amount == nil && strings.TrimSpace(row["Amount"]) != "" {
			badAmounts++
		}
		txs = append(txs, &domain.Transaction{
			Date:        date,
			Description: normalize.Description(row["Description"]),
			Amount:      amount,
			Category:    s.Categories.Resolve(row["Category"]),
			Account:     strings.TrimSpace(row["Account"]),
		})
	}
	state.Transactions = txs
	log := logger.FromContext(ctx)
	log.Info().
		Int("rows", len(txs)).
		Int("unparsable_dates", badDates).
		Int("unparsable_amounts", badAmounts).
		Msg("Normalized columns")
	return nil
}

// Step 4: ReconcileStep runs the table-wide pass: sort, interpolation,
// running balance, anomaly flags.
type ReconcileStep struct {
	Engine *reconcile.Engine
}

func (s *ReconcileStep) Execute(ctx context.Context, state *State) error {
	s.Engine.Reconcile(state.Transactions)
	return nil
}

// Step 5: SummarizeStep derives the monthly summary and the per-month
// category breakdown.
type SummarizeStep struct {
	Engine *reconcile.Engine
}

func (s *SummarizeStep) Execute(ctx context.Context, state *State) error {
	state.Summary = s.Engine.MonthlySummaries(state.Transactions)
	state.Breakdown = s.Engine.CategoryBreakdown(state.Transactions)
	return nil
}

// Step 6: WriteOutputsStep serializes all output tables.
type WriteOutputsStep struct{}

func (s *WriteOutputsStep) Execute(ctx context.Context, state *State) error {
	paths, err := tabular.NewWriter(state.OutputDir).WriteAll(
		state.Transactions, state.Summary, state.Breakdown)
	if err != nil {
		return err
	}
	state.OutputFiles = paths
	log := logger.FromContext(ctx)
	log.Info().
		Strs("files", paths).
		Msg("Wrote cleaned outputs")
	return nil
}

// Step 7: ExportOutputsStep uploads the output files to GCS. Only wired
// in when a bucket is configured.
type ExportOutputsStep struct {
	Bucket string
}

func (s *ExportOutputsStep) Execute(ctx context.Context, state *State) error {
	return gcsexport.ExportFiles(ctx, s.Bucket, state.RunID, state.OutputFiles)
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}
