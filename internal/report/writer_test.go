package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/inodb/modscope/internal/genedata"
	"github.com/inodb/modscope/internal/regression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsWriter(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStatsWriter(&buf)

	require.NoError(t, sw.WriteHeader())
	require.NoError(t, sw.Write(Entry{
		Sample:       "MR01_1",
		Region:       genedata.RegionUTR5,
		Modification: genedata.ModAI,
		Status:       StatusOK,
		Fit: &regression.FitResult{
			Slope:     1.9,
			Intercept: 0,
			RSquared:  0.9626666666666667,
			PValue:    0.018844,
			StdErr:    0.25,
			N:         4,
		},
	}))
	require.NoError(t, sw.Write(Entry{
		Sample:       "MR01_1",
		Region:       genedata.RegionIntron,
		Modification: genedata.ModM6A,
		Status:       StatusDegenerateX,
	}))
	require.NoError(t, sw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "#Sample\tRegion\tModification\tStatus\tSlope\tIntercept\tR_squared\tP_value\tStd_err\tN", lines[0])
	assert.Equal(t, "MR01_1\tutr5\tai\tok\t1.9\t0\t0.962667\t0.018844\t0.25\t4", lines[1])
	assert.Equal(t, "MR01_1\tintron\tm6a\tdegenerate_x\t-\t-\t-\t-\t-\t-", lines[2])
}

func TestStatsWriter_FlushRequired(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStatsWriter(&buf)

	require.NoError(t, sw.WriteHeader())
	assert.Empty(t, buf.String())

	require.NoError(t, sw.Flush())
	assert.NotEmpty(t, buf.String())
}
