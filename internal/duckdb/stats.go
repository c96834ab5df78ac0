package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/modscope/internal/genedata"
	"github.com/inodb/modscope/internal/report"
)

// StatRecord is one persisted regression result.
type StatRecord struct {
	Sample       string
	Region       genedata.Region
	Modification genedata.Modification
	Slope        float64
	Intercept    float64
	RSquared     float64
	PValue       float64
	StdErr       float64
	N            int64
	CreatedAt    time.Time
}

// statKey is the composite key for deduplicating stat rows before writing.
type statKey struct {
	sample, region, modification string
}

// WriteStats batch-inserts sweep results into DuckDB using the
// Appender API. Only ok entries carry numbers, so only those are
// written; existing rows for the affected samples are replaced, which
// keeps report reruns idempotent.
func (s *Store) WriteStats(entries []report.Entry) error {
	seen := make(map[statKey]bool, len(entries))
	samples := make(map[string]bool)
	fits := make([]report.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status != report.StatusOK || e.Fit == nil {
			continue
		}
		k := statKey{e.Sample, string(e.Region), string(e.Modification)}
		if seen[k] {
			continue
		}
		seen[k] = true
		samples[e.Sample] = true
		fits = append(fits, e)
	}
	if len(fits) == 0 {
		return nil
	}

	for sample := range samples {
		if _, err := s.db.Exec("DELETE FROM regression_stats WHERE sample = ?", sample); err != nil {
			return fmt.Errorf("clear stats for %s: %w", sample, err)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "regression_stats")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	now := time.Now()
	for _, e := range fits {
		if err := appender.AppendRow(
			e.Sample, string(e.Region), string(e.Modification),
			e.Fit.Slope, e.Fit.Intercept, e.Fit.RSquared,
			e.Fit.PValue, e.Fit.StdErr, int64(e.Fit.N), now,
		); err != nil {
			return fmt.Errorf("append stat row: %w", err)
		}
	}

	return appender.Flush()
}

// ClearStats removes all persisted regression results.
func (s *Store) ClearStats() error {
	_, err := s.db.Exec("DELETE FROM regression_stats")
	return err
}

// Stats returns all persisted regression results for a sample.
func (s *Store) Stats(sample string) ([]StatRecord, error) {
	rows, err := s.db.Query(`SELECT
		sample, region, modification,
		slope, intercept, r_squared, p_value, std_err, n, created_at
		FROM regression_stats
		WHERE sample=?
		ORDER BY region, modification`, sample)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var records []StatRecord
	for rows.Next() {
		rec, err := scanStat(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return records, nil
}

// Lookup returns the persisted result for one sample, region, and
// modification, or nil when none is stored.
func (s *Store) Lookup(sample string, region genedata.Region, mod genedata.Modification) (*StatRecord, error) {
	rows, err := s.db.Query(`SELECT
		sample, region, modification,
		slope, intercept, r_squared, p_value, std_err, n, created_at
		FROM regression_stats
		WHERE sample=? AND region=? AND modification=?`,
		sample, string(region), string(mod))
	if err != nil {
		return nil, fmt.Errorf("query stat: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rec, err := scanStat(rows.Scan)
	if err != nil {
		return nil, err
	}
	return &rec, rows.Err()
}

// CountStats returns the number of persisted regression results.
func (s *Store) CountStats() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM regression_stats").Scan(&n)
	return n, err
}

// scanStat scans one regression_stats row.
func scanStat(scan func(dest ...any) error) (StatRecord, error) {
	var rec StatRecord
	var region, modification string
	if err := scan(
		&rec.Sample, &region, &modification,
		&rec.Slope, &rec.Intercept, &rec.RSquared,
		&rec.PValue, &rec.StdErr, &rec.N, &rec.CreatedAt,
	); err != nil {
		return StatRecord{}, fmt.Errorf("scan stat: %w", err)
	}
	rec.Region = genedata.Region(region)
	rec.Modification = genedata.Modification(modification)
	return rec, nil
}
