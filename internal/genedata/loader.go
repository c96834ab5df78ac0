// Package genedata provides gene dataset loading functionality.
package genedata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Dataset file naming produced by the aggregation pipeline.
const (
	datasetPrefix = "gene_data_"
	datasetSuffix = ".json"

	// CombinedDatasetFile bundles every sample into one export, keyed
	// by sample name.
	CombinedDatasetFile = "gene_data_combined.json"
)

// DatasetFilename returns the canonical dataset filename for a sample.
func DatasetFilename(sample string) string {
	return datasetPrefix + sample + datasetSuffix
}

// Loader loads per-sample gene datasets from JSON files.
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader creates a loader for a directory of gene_data_<SAMPLE>.json files.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:    dir,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for load progress reporting.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load reads every dataset file in the directory, in sorted filename
// order, and returns the catalog. Loading is all or nothing: any file
// that fails to parse or validate withholds the entire catalog.
func (l *Loader) Load() (*Catalog, error) {
	files, err := filepath.Glob(filepath.Join(l.dir, datasetPrefix+"*"+datasetSuffix))
	if err != nil {
		return nil, fmt.Errorf("glob dataset files: %w", err)
	}

	// The combined export duplicates the per-sample files.
	kept := files[:0]
	for _, f := range files {
		if filepath.Base(f) != CombinedDatasetFile {
			kept = append(kept, f)
		}
	}
	files = kept

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s*%s files in %s", datasetPrefix, datasetSuffix, l.dir)
	}
	sort.Strings(files)

	catalog := NewCatalog()
	for _, f := range files {
		ds, err := LoadFile(f)
		if err != nil {
			return nil, fmt.Errorf("load dataset %s: %w", f, err)
		}
		if err := catalog.Add(ds); err != nil {
			return nil, fmt.Errorf("load dataset %s: %w", f, err)
		}
		l.logger.Info("loaded dataset",
			zap.String("sample", ds.Sample()),
			zap.Int("genes", ds.Len()),
			zap.String("file", f))
	}

	return catalog, nil
}

// LoadFile reads a single dataset file. The sample name is derived from
// the filename (gene_data_MR01_1.json -> MR01_1).
func LoadFile(path string) (*Dataset, error) {
	sample := SampleFromFilename(path)
	if sample == "" {
		return nil, fmt.Errorf("cannot derive sample name from %s", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*GeneRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return NewDataset(sample, records)
}

// SampleFromFilename extracts the sample name from a dataset filename,
// or returns "" if the name does not follow the gene_data_<SAMPLE>.json
// convention.
func SampleFromFilename(path string) string {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, datasetPrefix) || !strings.HasSuffix(base, datasetSuffix) {
		return ""
	}
	sample := strings.TrimSuffix(strings.TrimPrefix(base, datasetPrefix), datasetSuffix)
	return sample
}
