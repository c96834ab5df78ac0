// Package report runs regression sweeps over gene datasets and
// formats the results for the command line.
package report

import (
	"errors"

	"github.com/inodb/modscope/internal/genedata"
	"github.com/inodb/modscope/internal/regression"
)

// Status classifies the outcome of one sweep cell.
type Status string

const (
	StatusOK          Status = "ok"
	StatusEmpty       Status = "empty"
	StatusDegenerateX Status = "degenerate_x"
	StatusDegenerateY Status = "degenerate_y"
)

// Entry holds the regression outcome for one sample, region, and
// modification combination.
type Entry struct {
	Sample       string
	Region       genedata.Region
	Modification genedata.Modification
	Status       Status
	Fit          *regression.FitResult // nil unless Status is StatusOK
}

// Sweep fits a regression for every region/modification combination of
// every dataset in the catalog, in catalog order. Combinations that
// cannot be fitted are reported with a non-ok status instead of being
// dropped.
func Sweep(catalog *genedata.Catalog) []Entry {
	entries := make([]Entry, 0, catalog.Len()*len(genedata.Regions())*len(genedata.Modifications()))
	for _, sample := range catalog.Samples() {
		ds, ok := catalog.Dataset(sample)
		if !ok {
			continue
		}
		entries = append(entries, SweepDataset(ds)...)
	}
	return entries
}

// SweepDataset fits a regression for every region/modification
// combination of a single dataset.
func SweepDataset(ds *genedata.Dataset) []Entry {
	var entries []Entry
	for _, region := range genedata.Regions() {
		for _, mod := range genedata.Modifications() {
			points := regression.Project(ds, region, mod)
			entry := Entry{
				Sample:       ds.Sample(),
				Region:       region,
				Modification: mod,
			}
			res, err := regression.Fit(points, regression.PercentScale)
			if err != nil {
				entry.Status = FitStatus(err)
			} else {
				entry.Status = StatusOK
				entry.Fit = &res
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// FitStatus maps a regression error to its sweep status.
func FitStatus(err error) Status {
	var degErr *regression.DegenerateFitError
	if errors.As(err, &degErr) {
		if degErr.Axis == "y" {
			return StatusDegenerateY
		}
		return StatusDegenerateX
	}
	return StatusEmpty
}
