package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/modscope/internal/report"
)

func runVerify(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)

	var (
		dataDir   string
		tolerance float64
		showAll   bool
	)

	fs.StringVar(&dataDir, "data", viper.GetString("data.dir"), "Directory of gene_data_<SAMPLE>.json datasets")
	fs.Float64Var(&tolerance, "tolerance", report.DefaultTolerance, "Absolute tolerance for field comparison")
	fs.BoolVar(&showAll, "all", false, "Show matching genes in the output (default: mismatches only)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Recompute aggregate fields from embedded raw rows and compare.

Each gene's aggregates are re-derived from its raw_data rows and
checked against the stored values. Deviating fields are written as TSV
rows; genes without raw rows cannot be checked and are counted
separately. Any mismatch exits nonzero.

Usage:
  modscope verify [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  modscope verify -data data/
  modscope verify -data data/ -tolerance 1e-6
  modscope verify -data data/ -all
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if dataDir == "" {
		fmt.Fprintf(os.Stderr, "Error: -data is required (flag or data.dir config)\n\n")
		fs.Usage()
		return ExitUsage
	}

	catalog, ok := loadCatalog(dataDir, logger)
	if !ok {
		return ExitError
	}

	vw := report.NewVerifyWriter(os.Stdout, tolerance, showAll)
	if err := vw.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}

	for _, sample := range catalog.Samples() {
		ds, ok := catalog.Dataset(sample)
		if !ok {
			continue
		}
		for _, rec := range ds.Records() {
			if _, err := vw.WriteGene(sample, rec); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing comparison: %v\n", err)
				return ExitError
			}
		}
	}

	vw.WriteSummary(os.Stderr)

	if vw.Mismatches() > 0 {
		return ExitError
	}
	return ExitSuccess
}
