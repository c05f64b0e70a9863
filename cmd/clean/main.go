package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/statement-cleaner/internal/config"
	"github.com/dvloznov/statement-cleaner/internal/logger"
	"github.com/dvloznov/statement-cleaner/internal/pipeline"
	"github.com/dvloznov/statement-cleaner/internal/tabular"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Logger.Level)

	// Flags override .env / environment values.
	input := flag.String("input", "", "Path to the raw statement CSV")
	outDir := flag.String("out", "data/cleaned", "Output directory for cleaned files")
	dayFirst := flag.Bool("day-first", cfg.Cleaning.DayFirst, "Read ambiguous numeric dates as day-first")
	bucket := flag.String("gcs-bucket", cfg.Export.Bucket, "Optional GCS bucket to export outputs to")
	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("Error: --input is required")
	}
	cfg.Cleaning.DayFirst = *dayFirst
	cfg.Export.Bucket = *bucket

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("input", *input).Str("out", *outDir).Msg("Starting cleaning run")

	state, err := pipeline.CleanStatements(ctx, cfg, *input, *outDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Cleaning failed")
	}

	tabular.PrintSample(state.Transactions, cfg.Cleaning.SampleRows)
	fmt.Println("\nMonthly summary:")
	for _, s := range state.Summary {
		fmt.Printf("  %s  transactions=%d  income=%.2f  expense=%.2f  net=%.2f\n",
			s.Month, s.Transactions, s.TotalIncome, s.TotalExpense, s.Net)
	}
	tabular.PrintTotals(state.Transactions)

	fmt.Println("\nCleaning completed successfully.")
}
