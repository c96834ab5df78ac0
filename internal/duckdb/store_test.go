package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inodb/modscope/internal/genedata"
	"github.com/inodb/modscope/internal/regression"
	"github.com/inodb/modscope/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func okEntry(sample string, region genedata.Region, mod genedata.Modification, slope float64) report.Entry {
	return report.Entry{
		Sample:       sample,
		Region:       region,
		Modification: mod,
		Status:       report.StatusOK,
		Fit: &regression.FitResult{
			Slope:     slope,
			Intercept: 0.5,
			RSquared:  0.9,
			PValue:    0.01,
			StdErr:    0.1,
			N:         42,
		},
	}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestWriteAndQueryStats(t *testing.T) {
	s := openInMemory(t)

	entries := []report.Entry{
		okEntry("MR01_1", genedata.RegionUTR5, genedata.ModAI, 1.5),
		okEntry("MR01_1", genedata.RegionExon, genedata.ModM6A, -0.2),
		{Sample: "MR01_1", Region: genedata.RegionIntron, Modification: genedata.ModAI, Status: report.StatusEmpty},
	}
	require.NoError(t, s.WriteStats(entries))

	// The empty cell has no numbers to store.
	count, err := s.CountStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	records, err := s.Stats("MR01_1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, genedata.RegionExon, records[0].Region)
	assert.Equal(t, genedata.ModM6A, records[0].Modification)
	assert.Equal(t, -0.2, records[0].Slope)

	assert.Equal(t, genedata.RegionUTR5, records[1].Region)
	assert.Equal(t, 1.5, records[1].Slope)
	assert.Equal(t, 0.5, records[1].Intercept)
	assert.Equal(t, 0.9, records[1].RSquared)
	assert.Equal(t, int64(42), records[1].N)
	assert.False(t, records[1].CreatedAt.IsZero())
}

func TestWriteStats_ReplacesSample(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteStats([]report.Entry{
		okEntry("MR01_1", genedata.RegionUTR5, genedata.ModAI, 1.0),
		okEntry("MR01_1", genedata.RegionExon, genedata.ModAI, 3.0),
	}))
	require.NoError(t, s.WriteStats([]report.Entry{
		okEntry("MR01_1", genedata.RegionUTR5, genedata.ModAI, 2.0),
	}))

	rec, err := s.Lookup("MR01_1", genedata.RegionUTR5, genedata.ModAI)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 2.0, rec.Slope)

	// The rerun replaced the whole sample, not just the one cell.
	count, err := s.CountStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWriteStats_KeepsOtherSamples(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteStats([]report.Entry{
		okEntry("MR01_1", genedata.RegionUTR5, genedata.ModAI, 1.0),
	}))
	require.NoError(t, s.WriteStats([]report.Entry{
		okEntry("MR01_2", genedata.RegionUTR5, genedata.ModAI, 9.0),
	}))

	count, err := s.CountStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	rec, err := s.Lookup("MR01_1", genedata.RegionUTR5, genedata.ModAI)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1.0, rec.Slope)
}

func TestWriteStats_DedupesBatch(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteStats([]report.Entry{
		okEntry("MR01_1", genedata.RegionUTR5, genedata.ModAI, 1.0),
		okEntry("MR01_1", genedata.RegionUTR5, genedata.ModAI, 5.0),
	}))

	rec, err := s.Lookup("MR01_1", genedata.RegionUTR5, genedata.ModAI)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1.0, rec.Slope)
}

func TestWriteStats_NoFits(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteStats([]report.Entry{
		{Sample: "MR01_1", Region: genedata.RegionUTR5, Modification: genedata.ModAI, Status: report.StatusEmpty},
	}))

	count, err := s.CountStats()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLookupMissing(t *testing.T) {
	s := openInMemory(t)

	rec, err := s.Lookup("NOPE", genedata.RegionUTR5, genedata.ModAI)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestClearStats(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteStats([]report.Entry{
		okEntry("MR01_1", genedata.RegionUTR5, genedata.ModAI, 1.0),
	}))
	require.NoError(t, s.ClearStats())

	count, err := s.CountStats()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDatasetSources(t *testing.T) {
	s := openInMemory(t)

	path := filepath.Join(t.TempDir(), "gene_data_MR01_1.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	src, err := NewDatasetSource(path, "MR01_1", 120)
	require.NoError(t, err)
	assert.Equal(t, int64(2), src.Size)
	assert.Equal(t, int64(120), src.Genes)
	assert.False(t, src.ModTime.IsZero())

	require.NoError(t, s.WriteSources([]DatasetSource{src}))

	sources, err := s.Sources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "MR01_1", sources[0].Sample)
	assert.Equal(t, path, sources[0].Path)
	assert.Equal(t, int64(120), sources[0].Genes)
}

func TestWriteSources_Replaces(t *testing.T) {
	s := openInMemory(t)

	path := filepath.Join(t.TempDir(), "gene_data_MR01_1.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	src, err := NewDatasetSource(path, "MR01_1", 10)
	require.NoError(t, err)
	require.NoError(t, s.WriteSources([]DatasetSource{src}))

	src.Genes = 99
	require.NoError(t, s.WriteSources([]DatasetSource{src}))

	sources, err := s.Sources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, int64(99), sources[0].Genes)
}

func TestNewDatasetSource_Missing(t *testing.T) {
	_, err := NewDatasetSource(filepath.Join(t.TempDir(), "absent.json"), "S", 0)
	require.Error(t, err)
}
