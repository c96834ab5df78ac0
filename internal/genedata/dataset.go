// Package genedata defines the per-gene RNA-modification data model.
package genedata

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError reports a malformed gene record rejected at load time.
type ValidationError struct {
	Sample  string // Sample the dataset belongs to
	Index   int    // Record position in the dataset (0-based)
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid gene record at index %d (sample %s): %s", e.Index, e.Sample, e.Message)
}

// Dataset is one sample's ordered collection of gene records. Datasets
// are immutable after construction: no record is added, removed, or
// mutated at runtime, which makes all read operations safe for
// concurrent callers.
type Dataset struct {
	sample  string
	records []*GeneRecord
	byID    map[int64]*GeneRecord
}

// NewDataset validates records and builds the dataset for a sample.
// The first malformed record rejects the whole dataset, so downstream
// consumers never see a partially valid one.
func NewDataset(sample string, records []*GeneRecord) (*Dataset, error) {
	byID := make(map[int64]*GeneRecord, len(records))
	for i, g := range records {
		if msg := recordProblem(g); msg != "" {
			return nil, &ValidationError{Sample: sample, Index: i, Message: msg}
		}
		if _, dup := byID[g.ID]; dup {
			return nil, &ValidationError{Sample: sample, Index: i, Message: fmt.Sprintf("duplicate gene id %d", g.ID)}
		}
		byID[g.ID] = g
	}
	return &Dataset{sample: sample, records: records, byID: byID}, nil
}

// recordProblem describes the first constraint the record violates, or
// returns "" for a well-formed record.
func recordProblem(g *GeneRecord) string {
	if g == nil {
		return "nil record"
	}
	if g.ID <= 0 {
		return "missing or non-positive id"
	}
	if g.Name == "" {
		return "missing name"
	}
	mods := []Modification{ModAI, ModM6A, ModEither, ModUnmod}
	for _, r := range Regions() {
		for _, m := range mods {
			v := g.Rate(r, m)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Sprintf("non-finite %s %s rate", r, m)
			}
			if v < 0 || v > 1 {
				return fmt.Sprintf("%s %s rate %g outside [0, 1]", r, m, v)
			}
		}
		cpm := g.CPM(r)
		if math.IsNaN(cpm) || math.IsInf(cpm, 0) {
			return fmt.Sprintf("non-finite %s cpm", r)
		}
		if cpm < 0 {
			return fmt.Sprintf("negative %s cpm %g", r, cpm)
		}
	}
	return ""
}

// Sample returns the sample name the dataset belongs to.
func (d *Dataset) Sample() string {
	return d.sample
}

// Len returns the number of gene records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns all records in dataset order. Callers must not mutate
// the returned slice or its records.
func (d *Dataset) Records() []*GeneRecord {
	return d.records
}

// Gene looks up a record by id.
func (d *Dataset) Gene(id int64) (*GeneRecord, bool) {
	g, ok := d.byID[id]
	return g, ok
}

// Filter returns the records whose name or chromosome contains term as
// a case-insensitive substring, in dataset order. An empty term returns
// the full dataset.
func (d *Dataset) Filter(term string) []*GeneRecord {
	if term == "" {
		return d.records
	}
	q := strings.ToLower(term)
	var out []*GeneRecord
	for _, g := range d.records {
		if strings.Contains(strings.ToLower(g.Name), q) ||
			(g.Chromosome != "" && strings.Contains(strings.ToLower(g.Chromosome), q)) {
			out = append(out, g)
		}
	}
	return out
}
