// Package aggregate builds per-sample gene datasets from raw per-gene
// feature tables.
package aggregate

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/inodb/modscope/internal/genedata"
)

// Table is one gene's parsed feature table.
type Table struct {
	Gene    string     // Gene name, taken from the filename
	Samples []string   // Samples discovered in the header, in column order
	Rows    []TableRow // Measurements in file order
}

// TableRow is one feature/modification measurement across all samples.
type TableRow struct {
	Feature      string             // Region as written (UTR_5, UTR_3, Exon, Intron)
	Modification string             // Unmod, m6A, or Inosine
	Count        map[string]int64   // Read count per sample
	CPK          map[string]float64 // Counts per kilobase per sample
	MR           map[string]float64 // Parsed mean modification rate per sample
}

// ParseError represents an error during gene table parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gene table parse error at line %d: %s", e.Line, e.Message)
}

// sampleColumns records where one sample's three columns sit in the header.
type sampleColumns struct {
	count int
	cpk   int
	mr    int
}

// LoadTable parses a gene table file. The gene name is the filename
// without its extension.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene table: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	gene := strings.TrimSuffix(base, filepath.Ext(base))
	return ParseTable(f, gene)
}

// ParseTable parses a tab-separated gene feature table. The header
// names a Feature and a Modification column plus, per sample S, the
// triple Count_S, CPK_S, and S (the modification-rate column, numeric
// or "<mean> ± <std>").
func ParseTable(r io.Reader, gene string) (*Table, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read gene table: %w", err)
		}
		return nil, &ParseError{Line: 1, Message: "empty table"}
	}
	lineNo++

	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	featureIdx, modIdx, samples, cols, err := parseTableHeader(header)
	if err != nil {
		return nil, err
	}

	t := &Table{Gene: gene, Samples: samples}
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != len(header) {
			return nil, &ParseError{
				Line:    lineNo,
				Message: fmt.Sprintf("expected %d columns, found %d", len(header), len(fields)),
			}
		}

		row := TableRow{
			Feature:      fields[featureIdx],
			Modification: fields[modIdx],
			Count:        make(map[string]int64, len(samples)),
			CPK:          make(map[string]float64, len(samples)),
			MR:           make(map[string]float64, len(samples)),
		}
		for _, s := range samples {
			c := cols[s]
			count, err := parseCount(fields[c.count])
			if err != nil {
				return nil, &ParseError{
					Line:    lineNo,
					Message: fmt.Sprintf("invalid count for sample %s: %q", s, fields[c.count]),
				}
			}
			cpk, err := parseNumber(fields[c.cpk])
			if err != nil {
				return nil, &ParseError{
					Line:    lineNo,
					Message: fmt.Sprintf("invalid cpk for sample %s: %q", s, fields[c.cpk]),
				}
			}
			row.Count[s] = count
			row.CPK[s] = cpk
			row.MR[s] = ParseMeanRate(fields[c.mr])
		}
		t.Rows = append(t.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read gene table: %w", err)
	}

	return t, nil
}

// parseTableHeader locates the Feature/Modification columns and
// discovers the sample set from Count_<S>/CPK_<S>/<S> triples.
func parseTableHeader(header []string) (featureIdx, modIdx int, samples []string, cols map[string]sampleColumns, err error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	featureIdx, ok := index["Feature"]
	if !ok {
		return 0, 0, nil, nil, &ParseError{Line: 1, Message: "missing Feature column"}
	}
	modIdx, ok = index["Modification"]
	if !ok {
		return 0, 0, nil, nil, &ParseError{Line: 1, Message: "missing Modification column"}
	}

	cols = make(map[string]sampleColumns)
	for i, name := range header {
		sample, found := strings.CutPrefix(name, "Count_")
		if !found || sample == "" {
			continue
		}
		cpkIdx, ok := index["CPK_"+sample]
		if !ok {
			return 0, 0, nil, nil, &ParseError{Line: 1, Message: fmt.Sprintf("sample %s has no CPK_%s column", sample, sample)}
		}
		mrIdx, ok := index[sample]
		if !ok {
			return 0, 0, nil, nil, &ParseError{Line: 1, Message: fmt.Sprintf("sample %s has no %s rate column", sample, sample)}
		}
		samples = append(samples, sample)
		cols[sample] = sampleColumns{count: i, cpk: cpkIdx, mr: mrIdx}
	}
	if len(samples) == 0 {
		return 0, 0, nil, nil, &ParseError{Line: 1, Message: "no Count_<sample> columns found"}
	}

	return featureIdx, modIdx, samples, cols, nil
}

// missingValue reports the placeholders raw tables use for absent numbers.
func missingValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ".", "na", "nan", "none":
		return true
	}
	return false
}

// parseCount parses a read count. Counts sometimes arrive as floats
// ("12.0"); they are truncated the way the upstream tables were.
func parseCount(s string) (int64, error) {
	if missingValue(s) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	return int64(v), nil
}

// parseNumber parses a float column, mapping missing markers and
// non-finite values to 0.
func parseNumber(s string) (float64, error) {
	if missingValue(s) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	return v, nil
}

// ParseMeanRate extracts the mean from a modification-rate cell. Cells
// are either plain numerics or "<mean> ± <std>" strings; anything
// unparseable or non-finite reads as 0.
func ParseMeanRate(s string) float64 {
	mean, _, _ := strings.Cut(s, "±")
	v, err := strconv.ParseFloat(strings.TrimSpace(mean), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// featureRegions maps raw table feature names to regions. Features
// outside the table stay in raw data but are ignored by aggregation.
var featureRegions = map[string]genedata.Region{
	"utr_5":  genedata.RegionUTR5,
	"utr_3":  genedata.RegionUTR3,
	"exon":   genedata.RegionExon,
	"intron": genedata.RegionIntron,
}

// featureRegion resolves a raw feature name, case-insensitively.
func featureRegion(feature string) (genedata.Region, bool) {
	r, ok := featureRegions[strings.ToLower(feature)]
	return r, ok
}
