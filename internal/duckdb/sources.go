package duckdb

import (
	"fmt"
	"os"
	"time"
)

// DatasetSource records which dataset file a sample's stats came from,
// with stat-based identity so a stale report run is detectable.
type DatasetSource struct {
	Sample  string
	Path    string
	Size    int64
	ModTime time.Time
	Genes   int64
}

// NewDatasetSource stats the dataset file backing a sample.
func NewDatasetSource(path, sample string, genes int) (DatasetSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DatasetSource{}, fmt.Errorf("stat dataset %s: %w", path, err)
	}
	return DatasetSource{
		Sample:  sample,
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Genes:   int64(genes),
	}, nil
}

// WriteSources records the dataset files behind a report run,
// replacing any earlier rows for the same samples.
func (s *Store) WriteSources(sources []DatasetSource) error {
	for _, src := range sources {
		if _, err := s.db.Exec("DELETE FROM dataset_sources WHERE sample = ?", src.Sample); err != nil {
			return fmt.Errorf("clear source for %s: %w", src.Sample, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO dataset_sources (sample, path, size, mod_time, genes) VALUES (?, ?, ?, ?, ?)",
			src.Sample, src.Path, src.Size, src.ModTime, src.Genes,
		); err != nil {
			return fmt.Errorf("insert source for %s: %w", src.Sample, err)
		}
	}
	return nil
}

// Sources returns all recorded dataset sources ordered by sample.
func (s *Store) Sources() ([]DatasetSource, error) {
	rows, err := s.db.Query(`SELECT sample, path, size, mod_time, genes
		FROM dataset_sources ORDER BY sample`)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var sources []DatasetSource
	for rows.Next() {
		var src DatasetSource
		if err := rows.Scan(&src.Sample, &src.Path, &src.Size, &src.ModTime, &src.Genes); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return sources, nil
}
