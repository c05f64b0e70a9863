package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/dvloznov/statement-cleaner/internal/config"
	"github.com/dvloznov/statement-cleaner/internal/normalize"
	"github.com/dvloznov/statement-cleaner/internal/reconcile"
)

// NewCleaningPipeline builds the standard cleaning pipeline from
// configuration. The export step is appended only when a GCS bucket is
// configured.
func NewCleaningPipeline(cfg *config.Config) *Pipeline {
	engine := reconcile.NewEngine(cfg.Cleaning.AnomalyStdDevs)
	steps := []Step{
		&LoadTableStep{},
		&ReportMissingStep{},
		&NormalizeColumnsStep{
			Dates: normalize.NewDateNormalizer(cfg.Cleaning.DayFirst),
			Categories: normalize.NewCategoryResolver(
				normalize.DefaultCategorySet(),
				normalize.LevenshteinScorer(),
				cfg.Cleaning.SimilarityThreshold,
			),
		},
		&ReconcileStep{Engine: engine},
		&SummarizeStep{Engine: engine},
		&WriteOutputsStep{},
	}
	if cfg.Export.Bucket != "" {
		steps = append(steps, &ExportOutputsStep{Bucket: cfg.Export.Bucket})
	}
	return NewPipeline(steps...)
}

// CleanStatements runs the full pipeline for one input file and returns
// the final state.
func CleanStatements(ctx context.Context, cfg *config.Config, inputPath, outputDir string) (*State, error) {
	state := &State{
		RunID:     uuid.NewString(),
		InputPath: inputPath,
		OutputDir: outputDir,
	}
	if err := NewCleaningPipeline(cfg).Execute(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}
