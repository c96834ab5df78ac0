package report

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// StatsWriter writes sweep entries in tab-delimited format.
type StatsWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewStatsWriter creates a new tab-delimited sweep writer.
func NewStatsWriter(w io.Writer) *StatsWriter {
	return &StatsWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Sample",
			"Region",
			"Modification",
			"Status",
			"Slope",
			"Intercept",
			"R_squared",
			"P_value",
			"Std_err",
			"N",
		},
	}
}

// WriteHeader writes the header line.
func (sw *StatsWriter) WriteHeader() error {
	_, err := sw.w.WriteString(strings.Join(sw.columns, "\t") + "\n")
	return err
}

// Write writes a single sweep entry. Numeric columns read "-" when the
// cell has no fit.
func (sw *StatsWriter) Write(e Entry) error {
	slope, intercept, rsq, pval, stderr, n := "-", "-", "-", "-", "-", "-"
	if e.Fit != nil {
		slope = formatStat(e.Fit.Slope)
		intercept = formatStat(e.Fit.Intercept)
		rsq = formatStat(e.Fit.RSquared)
		pval = formatStat(e.Fit.PValue)
		stderr = formatStat(e.Fit.StdErr)
		n = strconv.Itoa(e.Fit.N)
	}

	values := []string{
		e.Sample,
		string(e.Region),
		string(e.Modification),
		string(e.Status),
		slope,
		intercept,
		rsq,
		pval,
		stderr,
		n,
	}
	_, err := sw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (sw *StatsWriter) Flush() error {
	return sw.w.Flush()
}

// formatStat renders a statistic with six significant digits, enough
// to eyeball without drowning the table.
func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
