// Package regression implements the metric projector and the ordinary
// least-squares engine over gene datasets.
package regression

import (
	"github.com/inodb/modscope/internal/genedata"
)

// ProjectedPoint is one gene's (rate, expression) pair for a specific
// (region, modification) selection. Points are ephemeral: recomputed on
// every selection change, never persisted.
type ProjectedPoint struct {
	Name       string  `json:"name"`
	ID         int64   `json:"id"`
	Rate       float64 `json:"rate"`       // Modification rate, fractional
	Expression float64 `json:"expression"` // CPM for the same region
}

// Project derives one point per gene record for the given selection, in
// dataset order. The total region resolves to the total_* fields; a
// field the record never stored reads as 0. Project has no side effects
// and never fails.
func Project(ds *genedata.Dataset, region genedata.Region, mod genedata.Modification) []ProjectedPoint {
	records := ds.Records()
	points := make([]ProjectedPoint, len(records))
	for i, g := range records {
		points[i] = ProjectedPoint{
			Name:       g.Name,
			ID:         g.ID,
			Rate:       g.Rate(region, mod),
			Expression: g.CPM(region),
		}
	}
	return points
}
