package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/modscope/internal/aggregate"
	"github.com/inodb/modscope/internal/genedata"
)

func runConvert(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	var (
		inputDir  string
		outputDir string
		chromMap  string
		workers   int
	)

	fs.StringVar(&inputDir, "input", "", "Input directory of raw <GENE>.tsv tables")
	fs.StringVar(&inputDir, "i", "", "Input directory of raw <GENE>.tsv tables (shorthand)")
	fs.StringVar(&outputDir, "output", "", "Output directory for gene_data_<SAMPLE>.json datasets")
	fs.StringVar(&outputDir, "o", "", "Output directory for datasets (shorthand)")
	fs.StringVar(&chromMap, "chrom-map", "", "Gene-to-chromosome map TSV (optional)")
	fs.IntVar(&workers, "workers", 0, "Parser pool size (0 = number of CPUs)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Aggregate raw per-gene modification tables into per-sample datasets.

Every <GENE>.tsv table under the input directory is parsed and reduced
to one record per sample, then written as gene_data_<SAMPLE>.json plus
a combined export. The output directory is what serve, report, and
verify read.

Usage:
  modscope convert [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Aggregate a directory of raw tables
  modscope convert -input raw/ -output data/

  # Attach chromosome names from a two-column map
  modscope convert -input raw/ -output data/ -chrom-map chromosomes.tsv

  # Limit the parser pool
  modscope convert -input raw/ -output data/ -workers 4
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	// Validate required arguments
	if inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: -input is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if outputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: -output is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	fmt.Fprintf(os.Stderr, "Aggregating raw gene tables...\n")
	fmt.Fprintf(os.Stderr, "  Input:  %s\n", inputDir)
	fmt.Fprintf(os.Stderr, "  Output: %s\n", outputDir)

	builder := aggregate.NewBuilder(inputDir)
	builder.SetLogger(logger)
	builder.SetWorkers(workers)

	if chromMap != "" {
		m, err := aggregate.LoadChromosomeMap(chromMap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading chromosome map: %v\n", err)
			return ExitError
		}
		builder.SetChromosomeMap(m)
		fmt.Fprintf(os.Stderr, "  Chromosome assignments: %d\n", len(m))
	}

	catalog, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "\nAggregated %d samples:\n", catalog.Len())
	for _, sample := range catalog.Samples() {
		if ds, ok := catalog.Dataset(sample); ok {
			fmt.Fprintf(os.Stderr, "  %s: %d genes\n", sample, ds.Len())
		}
	}

	if err := aggregate.ExportCatalog(catalog, outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing datasets: %v\n", err)
		return ExitError
	}

	// Verify the written files load back with identical gene counts
	reloaded, err := genedata.NewLoader(outputDir).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error verifying written datasets: %v\n", err)
		return ExitError
	}
	for _, sample := range catalog.Samples() {
		built, ok := catalog.Dataset(sample)
		if !ok {
			continue
		}
		loaded, ok := reloaded.Dataset(sample)
		if !ok || loaded.Len() != built.Len() {
			fmt.Fprintf(os.Stderr, "Error: written dataset for %s does not load back with %d genes\n",
				sample, built.Len())
			return ExitError
		}
	}

	fmt.Fprintf(os.Stderr, "\nConversion complete!\n")
	fmt.Fprintf(os.Stderr, "  Samples: %d\n", catalog.Len())
	fmt.Fprintf(os.Stderr, "  Output directory: %s\n", outputDir)

	return ExitSuccess
}
