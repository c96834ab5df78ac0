// Package main provides the modscope command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/modscope/internal/genedata"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var (
		showVersion bool
		verbose     bool
	)
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("modscope version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer func() { _ = logger.Sync() }()

	switch args[0] {
	case "convert":
		return runConvert(args[1:], logger)
	case "serve":
		return runServe(args[1:], logger, verbose)
	case "report":
		return runReport(args[1:], logger)
	case "verify":
		return runVerify(args[1:], logger)
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `modscope - RNA modification statistics explorer

Usage:
  modscope [options] <command> [arguments]

Commands:
  convert     Aggregate raw gene tables into per-sample datasets
  serve       Serve datasets over an HTTP JSON API
  report      Run the regression sweep and write a stats report
  verify      Recompute aggregates from raw rows and compare
  config      Show, get, or set configuration values
  help        Show this help message

Global Options:
  --version   Show version information
  --verbose   Enable verbose logging

Examples:
  # Aggregate raw gene tables into datasets (one-time per experiment)
  modscope convert -input raw/ -output data/

  # Serve the datasets on :8080
  modscope serve -data data/

  # Sweep every sample and selection, persisting stats to DuckDB
  modscope report -data data/ -db stats.duckdb

  # Check stored aggregates against their raw rows
  modscope verify -data data/

For more information on a command, use:
  modscope <command> --help
`)
}

// newLogger builds the CLI logger: development config with -verbose,
// production JSON otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadCatalog reads every dataset under dir, printing the error on
// failure.
func loadCatalog(dir string, logger *zap.Logger) (*genedata.Catalog, bool) {
	loader := genedata.NewLoader(dir)
	loader.SetLogger(logger)
	catalog, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading datasets: %v\n", err)
		fmt.Fprintf(os.Stderr, "Hint: Build datasets from raw tables with: modscope convert -input raw/ -output %s\n", dir)
		return nil, false
	}
	return catalog, true
}
