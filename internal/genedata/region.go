// Package genedata defines the per-gene RNA-modification data model:
// regions, modification types, gene records, and per-sample datasets.
package genedata

import (
	"fmt"
	"strings"
)

// Region identifies the genomic region a measurement is scoped to.
type Region string

// The five supported regions. RegionTotal aggregates over the four
// concrete regions and resolves to the total_* record fields.
const (
	RegionUTR5   Region = "utr5"
	RegionUTR3   Region = "utr3"
	RegionExon   Region = "exon"
	RegionIntron Region = "intron"
	RegionTotal  Region = "total"
)

// Modification identifies an RNA modification type.
type Modification string

// The three selectable modification types. ModEither counts reads
// carrying either modification, capped at 1.0 during aggregation.
const (
	ModAI     Modification = "ai"
	ModM6A    Modification = "m6a"
	ModEither Modification = "either"
)

// ModUnmod tags unmodified-read rates carried over from raw tables.
// It is stored on records per concrete region but is not a selectable
// modification: ParseModification rejects it and Modifications omits it.
const ModUnmod Modification = "unmod"

var regionLabels = map[Region]string{
	RegionUTR5:   "5' UTR",
	RegionUTR3:   "3' UTR",
	RegionExon:   "Exonic",
	RegionIntron: "Intronic",
	RegionTotal:  "Total Gene",
}

var modificationLabels = map[Modification]string{
	ModAI:     "A-to-I",
	ModM6A:    "m6A",
	ModEither: "Either Modification",
}

// Regions returns all supported regions in canonical order.
func Regions() []Region {
	return []Region{RegionUTR5, RegionUTR3, RegionExon, RegionIntron, RegionTotal}
}

// AggregationRegions returns the concrete regions a raw gene table can
// contain, i.e. everything except RegionTotal.
func AggregationRegions() []Region {
	return []Region{RegionUTR5, RegionUTR3, RegionExon, RegionIntron}
}

// Modifications returns the selectable modification types in canonical order.
func Modifications() []Modification {
	return []Modification{ModAI, ModM6A, ModEither}
}

// ParseRegion parses a region identifier, case-insensitively.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToLower(s))
	if _, ok := regionLabels[r]; !ok {
		return "", fmt.Errorf("unknown region %q (want utr5, utr3, exon, intron, or total)", s)
	}
	return r, nil
}

// ParseModification parses a modification identifier, case-insensitively.
func ParseModification(s string) (Modification, error) {
	m := Modification(strings.ToLower(s))
	if _, ok := modificationLabels[m]; !ok {
		return "", fmt.Errorf("unknown modification %q (want ai, m6a, or either)", s)
	}
	return m, nil
}

// Label returns the display name for the region (e.g. "5' UTR").
func (r Region) Label() string {
	if l, ok := regionLabels[r]; ok {
		return l
	}
	return string(r)
}

// Label returns the display name for the modification type (e.g. "A-to-I").
func (m Modification) Label() string {
	if l, ok := modificationLabels[m]; ok {
		return l
	}
	return string(m)
}
