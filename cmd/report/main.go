package main

import (
	"flag"
	"fmt"

	"github.com/dvloznov/statement-cleaner/internal/config"
	"github.com/dvloznov/statement-cleaner/internal/logger"
	"github.com/dvloznov/statement-cleaner/internal/tabular"
)

// report loads the raw table and prints the pre-flight diagnostics
// without writing any outputs.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Logger.Level)

	input := flag.String("input", "", "Path to the raw statement CSV")
	sample := flag.Int("sample", 5, "Number of raw rows to print")
	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("Error: --input is required")
	}

	raw, err := tabular.ReadCSV(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load input")
	}

	log.Info().
		Str("input", *input).
		Str("charset", raw.Charset).
		Strs("columns", raw.Columns).
		Msg("Inspected raw table")

	tabular.BuildMissingReport(raw).Log(log)

	fmt.Println("Sample raw rows:")
	for i, row := range raw.Rows {
		if i >= *sample {
			break
		}
		fmt.Printf("  %d:", i+1)
		for _, col := range raw.Columns {
			fmt.Printf("  %s=%q", col, row[col])
		}
		fmt.Println()
	}
}
