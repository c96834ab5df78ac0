// Package aggregate builds per-sample gene datasets from raw tables.
package aggregate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ChromosomeMap maps gene name -> chromosome label (e.g. chr12).
type ChromosomeMap map[string]string

// LoadChromosomeMap loads a gene-to-chromosome mapping from a
// two-column TSV file. Genes absent from the map keep an empty
// chromosome, which the filter simply never matches.
func LoadChromosomeMap(path string) (ChromosomeMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chromosome map: %w", err)
	}
	defer f.Close()

	return ParseChromosomeMap(f)
}

// ParseChromosomeMap parses TSV content with gene in column 0 and
// chromosome in column 1. Blank lines, comment lines, and a
// gene/chromosome header line are skipped, as are placeholder values.
func ParseChromosomeMap(reader io.Reader) (ChromosomeMap, error) {
	m := make(ChromosomeMap)
	scanner := bufio.NewScanner(reader)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("chromosome map line %d: expected 2 columns, found %d", lineNo, len(fields))
		}

		gene := strings.TrimSpace(fields[0])
		chrom := strings.TrimSpace(fields[1])
		if lineNo == 1 && strings.EqualFold(gene, "gene") {
			continue
		}
		if gene == "" || chrom == "" || strings.EqualFold(chrom, "nan") {
			continue
		}
		m[gene] = chrom
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chromosome map: %w", err)
	}

	return m, nil
}
