package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/modscope/internal/duckdb"
	"github.com/inodb/modscope/internal/genedata"
	"github.com/inodb/modscope/internal/report"
)

func runReport(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("report", flag.ExitOnError)

	var (
		dataDir    string
		outputFile string
		dbPath     string
	)

	fs.StringVar(&dataDir, "data", viper.GetString("data.dir"), "Directory of gene_data_<SAMPLE>.json datasets")
	fs.StringVar(&outputFile, "o", viper.GetString("report.output"), "Output TSV file (default: stdout)")
	fs.StringVar(&outputFile, "output", viper.GetString("report.output"), "Output TSV file (default: stdout)")
	fs.StringVar(&dbPath, "db", viper.GetString("report.db"), "DuckDB database to persist stats (optional)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Run the regression sweep and write a stats report.

Every sample is swept over all region and modification combinations.
Combinations that cannot be fitted appear with a non-ok status and
dashes in the numeric columns. With -db, ok rows are also persisted
to a DuckDB database, replacing earlier rows for the same samples.

Usage:
  modscope report [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  modscope report -data data/
  modscope report -data data/ -o stats.tsv
  modscope report -data data/ -db stats.duckdb
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

	entries := report.Sweep(catalog)

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer f.Close()
		out = f
	}

	writer := report.NewStatsWriter(out)
	if err := writer.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}
	okCount := 0
	for _, e := range entries {
		if e.Status == report.StatusOK {
			okCount++
		}
		if err := writer.Write(e); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing stats: %v\n", err)
			return ExitError
		}
	}
	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "Swept %d combinations across %d samples (%d ok)\n",
		len(entries), catalog.Len(), okCount)

	if dbPath != "" {
		if code := persistReport(dbPath, dataDir, catalog, entries); code != ExitSuccess {
			return code
		}
	}

	return ExitSuccess
}

// persistReport writes ok sweep rows and dataset fingerprints to the
// stats database.
func persistReport(dbPath, dataDir string, catalog *genedata.Catalog, entries []report.Entry) int {
	store, err := duckdb.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening stats database: %v\n", err)
		return ExitError
	}
	defer store.Close()

	if err := store.WriteStats(entries); err != nil {
		fmt.Fprintf(os.Stderr, "Error persisting stats: %v\n", err)
		return ExitError
	}

	sources := make([]duckdb.DatasetSource, 0, catalog.Len())
	for _, sample := range catalog.Samples() {
		ds, ok := catalog.Dataset(sample)
		if !ok {
			continue
		}
		path := filepath.Join(dataDir, genedata.DatasetFilename(sample))
		src, err := duckdb.NewDatasetSource(path, sample, ds.Len())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not fingerprint dataset for %s: %v\n", sample, err)
			continue
		}
		sources = append(sources, src)
	}
	if err := store.WriteSources(sources); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording dataset sources: %v\n", err)
		return ExitError
	}

	count, err := store.CountStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error verifying stats count: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Persisted stats: %d rows in %s\n", count, dbPath)

	return ExitSuccess
}
