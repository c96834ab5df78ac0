// Package aggregate builds per-sample gene datasets from raw per-gene
// feature tables.
package aggregate

import (
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/inodb/modscope/internal/genedata"
)

// Raw table modification names. Inosine marks A-to-I editing.
const (
	rawModUnmod   = "Unmod"
	rawModM6A     = "m6A"
	rawModInosine = "Inosine"
)

// ResolveRows flattens a table's per-sample columns into raw feature
// rows for one sample, preserving table order. These are the rows a
// dataset export embeds as raw_data.
func ResolveRows(t *Table, sample string) []genedata.RawFeature {
	rows := make([]genedata.RawFeature, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = genedata.RawFeature{
			Feature:      r.Feature,
			Modification: r.Modification,
			Count:        r.Count[sample],
			CPK:          r.CPK[sample],
			MR:           r.MR[sample],
		}
	}
	return rows
}

// Recompute derives the aggregate statistics implied by resolved raw
// feature rows. It is the single source of the aggregation math: the
// builder uses it to produce records, verification uses it to check
// stored records against their embedded raw_data.
//
// Per concrete region with rows present, cpm is the mean of the
// strictly positive cpk values and each modification rate comes from
// the region's first row carrying that modification. Per region,
// either = min(ai + m6a, 1). Total rates average over all four
// concrete regions (absent regions contribute 0); total cpm averages
// the strictly positive region cpms.
func Recompute(rows []genedata.RawFeature) *genedata.GeneRecord {
	g := &genedata.GeneRecord{}

	for _, region := range genedata.AggregationRegions() {
		var regionRows []genedata.RawFeature
		for _, r := range rows {
			if fr, ok := featureRegion(r.Feature); ok && fr == region {
				regionRows = append(regionRows, r)
			}
		}
		if len(regionRows) == 0 {
			continue
		}

		var positive []float64
		for _, r := range regionRows {
			if r.CPK > 0 {
				positive = append(positive, r.CPK)
			}
		}
		if len(positive) > 0 {
			mean, _ := stats.Mean(positive)
			g.SetCPM(region, mean)
		}

		g.SetRate(region, genedata.ModAI, firstRate(regionRows, rawModInosine))
		g.SetRate(region, genedata.ModM6A, firstRate(regionRows, rawModM6A))
		g.SetRate(region, genedata.ModUnmod, firstRate(regionRows, rawModUnmod))
	}

	for _, region := range genedata.AggregationRegions() {
		combined := g.Rate(region, genedata.ModAI) + g.Rate(region, genedata.ModM6A)
		g.SetRate(region, genedata.ModEither, math.Min(combined, 1.0))
	}

	var cpms []float64
	for _, region := range genedata.AggregationRegions() {
		if cpm := g.CPM(region); cpm > 0 {
			cpms = append(cpms, cpm)
		}
	}
	if len(cpms) > 0 {
		mean, _ := stats.Mean(cpms)
		g.SetCPM(genedata.RegionTotal, mean)
	}

	for _, mod := range genedata.Modifications() {
		rates := make([]float64, 0, 4)
		for _, region := range genedata.AggregationRegions() {
			rates = append(rates, g.Rate(region, mod))
		}
		mean, _ := stats.Mean(rates)
		g.SetRate(genedata.RegionTotal, mod, mean)
	}

	return g
}

// firstRate returns the parsed rate of the first row carrying the
// modification, or 0 if the region has no such row.
func firstRate(rows []genedata.RawFeature, modification string) float64 {
	for _, r := range rows {
		if strings.EqualFold(r.Modification, modification) {
			return r.MR
		}
	}
	return 0
}

// BuildRecord aggregates one gene's table into a record for the given
// sample, embedding the sample-resolved raw rows. ID and chromosome
// assignment belong to the Builder.
func BuildRecord(t *Table, sample string) *genedata.GeneRecord {
	rows := ResolveRows(t, sample)
	g := Recompute(rows)
	g.Name = t.Gene
	g.RawData = rows
	return g
}
