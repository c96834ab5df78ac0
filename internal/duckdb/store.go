// Package duckdb persists regression sweep results and dataset
// provenance in a DuckDB database, queryable across runs.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for persisted regression stats.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS regression_stats (
		sample VARCHAR,
		region VARCHAR,
		modification VARCHAR,
		slope DOUBLE,
		intercept DOUBLE,
		r_squared DOUBLE,
		p_value DOUBLE,
		std_err DOUBLE,
		n BIGINT,
		created_at TIMESTAMP,
		PRIMARY KEY (sample, region, modification)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS dataset_sources (
		sample VARCHAR,
		path VARCHAR,
		size BIGINT,
		mod_time TIMESTAMP,
		genes BIGINT,
		PRIMARY KEY (sample)
	)`)
	return err
}
