// Package aggregate builds per-sample gene datasets from raw tables.
package aggregate

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/inodb/modscope/internal/genedata"
)

// Builder aggregates a directory of raw gene tables into one dataset
// per sample. Gene ids are assigned by position in sorted filename
// order, starting at 1, so repeated runs over the same inputs produce
// identical datasets.
type Builder struct {
	inputDir string
	workers  int
	chromMap ChromosomeMap
	logger   *zap.Logger
}

// NewBuilder creates a builder over a directory of <GENE>.tsv tables.
func NewBuilder(inputDir string) *Builder {
	return &Builder{
		inputDir: inputDir,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for build progress reporting.
func (b *Builder) SetLogger(logger *zap.Logger) {
	b.logger = logger
}

// SetWorkers sets the parser pool size. 0 means runtime.NumCPU().
func (b *Builder) SetWorkers(workers int) {
	b.workers = workers
}

// SetChromosomeMap supplies gene-to-chromosome assignments for the
// built records.
func (b *Builder) SetChromosomeMap(m ChromosomeMap) {
	b.chromMap = m
}

// Build parses every gene table and aggregates a validated dataset per
// sample discovered in the table headers. Any parse or validation
// failure aborts the build; no partial catalog is returned.
func (b *Builder) Build() (*genedata.Catalog, error) {
	files, err := filepath.Glob(filepath.Join(b.inputDir, "*.tsv"))
	if err != nil {
		return nil, fmt.Errorf("glob gene tables: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no *.tsv gene tables in %s", b.inputDir)
	}
	sort.Strings(files)

	items := make(chan WorkItem)
	go func() {
		for i, f := range files {
			items <- WorkItem{Seq: i, Path: f}
		}
		close(items)
	}()

	tables := make([]*Table, 0, len(files))
	err = OrderedCollect(ParallelParse(items, b.workers), func(r WorkResult) error {
		if r.Err != nil {
			return fmt.Errorf("parse gene table %s: %w", r.Path, r.Err)
		}
		tables = append(tables, r.Table)
		return nil
	})
	if err != nil {
		return nil, err
	}

	samples := sampleUnion(tables)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples found in gene tables under %s", b.inputDir)
	}

	catalog := genedata.NewCatalog()
	for _, sample := range samples {
		records := make([]*genedata.GeneRecord, len(tables))
		for i, t := range tables {
			rec := BuildRecord(t, sample)
			rec.ID = int64(i + 1)
			rec.Chromosome = b.chromMap[t.Gene]
			records[i] = rec
		}

		ds, err := genedata.NewDataset(sample, records)
		if err != nil {
			return nil, fmt.Errorf("aggregate sample %s: %w", sample, err)
		}
		if err := catalog.Add(ds); err != nil {
			return nil, err
		}
		b.logger.Info("aggregated sample",
			zap.String("sample", sample),
			zap.Int("genes", ds.Len()))
	}

	return catalog, nil
}

// sampleUnion merges the samples of all tables in first-seen order.
// Tables missing a sample contribute all-zero records for it.
func sampleUnion(tables []*Table) []string {
	var samples []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, s := range t.Samples {
			if !seen[s] {
				seen[s] = true
				samples = append(samples, s)
			}
		}
	}
	return samples
}
