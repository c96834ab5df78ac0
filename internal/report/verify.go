package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/inodb/modscope/internal/aggregate"
	"github.com/inodb/modscope/internal/genedata"
)

// Category classifies the verification result for a single gene.
type Category string

const (
	CatMatch     Category = "match"
	CatMismatch  Category = "mismatch"
	CatNoRawData Category = "no_raw_data"
)

// DefaultTolerance is the absolute difference below which a stored
// aggregate and its recomputed value count as equal.
const DefaultTolerance = 1e-9

// VerifyWriter recomputes each gene's aggregate fields from its
// embedded raw rows and writes tab-delimited rows for every field that
// disagrees with the stored value.
type VerifyWriter struct {
	w         io.Writer
	tolerance float64
	counts    map[Category]int
	total     int
	showAll   bool
}

// NewVerifyWriter creates a verification output writer. When showAll
// is set, matching genes are reported too, one row per gene.
func NewVerifyWriter(w io.Writer, tolerance float64, showAll bool) *VerifyWriter {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &VerifyWriter{
		w:         w,
		tolerance: tolerance,
		counts:    make(map[Category]int),
		showAll:   showAll,
	}
}

// WriteHeader writes the verification output header.
func (v *VerifyWriter) WriteHeader() error {
	_, err := fmt.Fprintln(v.w, strings.Join([]string{
		"#Sample", "Gene", "Field", "Stored", "Recomputed", "Delta",
	}, "\t"))
	return err
}

// WriteGene verifies a single record and writes one row per deviating
// field. Records without raw rows cannot be checked and are counted
// separately.
func (v *VerifyWriter) WriteGene(sample string, rec *genedata.GeneRecord) (Category, error) {
	v.total++

	if len(rec.RawData) == 0 {
		v.counts[CatNoRawData]++
		return CatNoRawData, nil
	}

	want := aggregate.Recompute(rec.RawData)

	cat := CatMatch
	for _, fd := range fieldDeltas(rec, want, v.tolerance) {
		cat = CatMismatch
		_, err := fmt.Fprintln(v.w, strings.Join([]string{
			sample,
			rec.Name,
			fd.field,
			formatVerify(fd.stored),
			formatVerify(fd.recomputed),
			formatVerify(fd.stored - fd.recomputed),
		}, "\t"))
		if err != nil {
			return cat, err
		}
	}

	v.counts[cat]++
	if cat == CatMatch && v.showAll {
		_, err := fmt.Fprintf(v.w, "%s\t%s\tall\t-\t-\t-\n", sample, rec.Name)
		if err != nil {
			return cat, err
		}
	}
	return cat, nil
}

// Mismatches returns the number of genes with at least one deviating
// field.
func (v *VerifyWriter) Mismatches() int {
	return v.counts[CatMismatch]
}

// Total returns the number of genes verified.
func (v *VerifyWriter) Total() int {
	return v.total
}

// Counts returns the per-category gene counts.
func (v *VerifyWriter) Counts() map[Category]int {
	return v.counts
}

// WriteSummary writes category counts to the given writer.
func (v *VerifyWriter) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\nVerification Summary (%d genes):\n", v.total)

	type catCount struct {
		cat   Category
		count int
	}
	var sorted []catCount
	for cat, count := range v.counts {
		sorted = append(sorted, catCount{cat, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].cat < sorted[j].cat
	})

	for _, cc := range sorted {
		fmt.Fprintf(w, "  %-14s%d\n", cc.cat, cc.count)
	}
}

// fieldDelta records one aggregate field whose stored value deviates
// from the recomputed one.
type fieldDelta struct {
	field      string
	stored     float64
	recomputed float64
}

// fieldDeltas compares every aggregate field of a stored record
// against the recomputed one, in the dataset's column order.
func fieldDeltas(stored, want *genedata.GeneRecord, tolerance float64) []fieldDelta {
	var deltas []fieldDelta

	check := func(field string, got, exp float64) {
		if math.Abs(got-exp) > tolerance {
			deltas = append(deltas, fieldDelta{field: field, stored: got, recomputed: exp})
		}
	}

	for _, region := range genedata.Regions() {
		for _, mod := range genedata.Modifications() {
			field := fmt.Sprintf("%s_%s_rate", region, mod)
			check(field, stored.Rate(region, mod), want.Rate(region, mod))
		}
		if region != genedata.RegionTotal {
			field := fmt.Sprintf("%s_unmod_rate", region)
			check(field, stored.Rate(region, genedata.ModUnmod), want.Rate(region, genedata.ModUnmod))
		}
		check(fmt.Sprintf("%s_cpm", region), stored.CPM(region), want.CPM(region))
	}

	return deltas
}

// formatVerify renders a verification value with full precision so a
// mismatch can be diffed against the stored JSON.
func formatVerify(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
