package regression

import (
	"testing"

	"github.com/inodb/modscope/internal/genedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectionDataset(t *testing.T) *genedata.Dataset {
	t.Helper()
	ds, err := genedata.NewDataset("MR01_1", []*genedata.GeneRecord{
		{
			ID: 1, Name: "BRCA1",
			UTR5AIRate: 0.1, UTR5CPM: 10,
			TotalEitherRate: 0.5, TotalCPM: 100,
		},
		{
			ID: 2, Name: "EGFR",
			UTR5AIRate: 0.2, UTR5CPM: 20,
		},
		{
			ID: 3, Name: "KRAS",
			// No utr5 fields at all; both coordinates default to 0.
			ExonM6ARate: 0.8, ExonCPM: 5,
		},
	})
	require.NoError(t, err)
	return ds
}

func TestProject_OrderPreserved(t *testing.T) {
	ds := projectionDataset(t)

	points := Project(ds, genedata.RegionUTR5, genedata.ModAI)
	require.Len(t, points, ds.Len())
	for i, g := range ds.Records() {
		assert.Equal(t, g.ID, points[i].ID)
		assert.Equal(t, g.Name, points[i].Name)
	}
}

func TestProject_Values(t *testing.T) {
	ds := projectionDataset(t)

	points := Project(ds, genedata.RegionUTR5, genedata.ModAI)
	assert.Equal(t, 0.1, points[0].Rate)
	assert.Equal(t, 10.0, points[0].Expression)
	assert.Equal(t, 0.2, points[1].Rate)
	assert.Equal(t, 20.0, points[1].Expression)
}

func TestProject_MissingFieldsDefaultZero(t *testing.T) {
	ds := projectionDataset(t)

	points := Project(ds, genedata.RegionUTR5, genedata.ModAI)
	assert.Zero(t, points[2].Rate)
	assert.Zero(t, points[2].Expression)

	// m6a was never set on any utr5 field either.
	points = Project(ds, genedata.RegionUTR5, genedata.ModM6A)
	for _, p := range points {
		assert.Zero(t, p.Rate)
	}
}

func TestProject_TotalRegionUsesTotalFields(t *testing.T) {
	ds := projectionDataset(t)

	points := Project(ds, genedata.RegionTotal, genedata.ModEither)
	assert.Equal(t, 0.5, points[0].Rate)
	assert.Equal(t, 100.0, points[0].Expression)
	assert.Zero(t, points[1].Rate)
	assert.Zero(t, points[1].Expression)
}

func TestProject_Pure(t *testing.T) {
	ds := projectionDataset(t)

	first := Project(ds, genedata.RegionExon, genedata.ModM6A)
	first[0].Rate = 99 // scribbling on the output must not reach the dataset

	second := Project(ds, genedata.RegionExon, genedata.ModM6A)
	assert.Zero(t, second[0].Rate)
	assert.Equal(t, 0.8, second[2].Rate)
}
