package aggregate

import (
	"testing"

	"github.com/inodb/modscope/internal/genedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecompute(t *testing.T) {
	rows := []genedata.RawFeature{
		{Feature: "UTR_5", Modification: "Unmod", Count: 100, CPK: 10, MR: 0.85},
		{Feature: "UTR_5", Modification: "m6A", Count: 20, CPK: 20, MR: 0.1},
		{Feature: "UTR_5", Modification: "Inosine", Count: 5, CPK: 0, MR: 0.05},
		{Feature: "Exon", Modification: "Inosine", Count: 50, CPK: 40, MR: 0.3},
	}

	g := Recompute(rows)

	// Region cpm is the mean of strictly positive cpk values only.
	assert.Equal(t, 15.0, g.CPM(genedata.RegionUTR5))
	assert.Equal(t, 40.0, g.CPM(genedata.RegionExon))
	assert.Zero(t, g.CPM(genedata.RegionUTR3))
	assert.Zero(t, g.CPM(genedata.RegionIntron))

	assert.Equal(t, 0.05, g.Rate(genedata.RegionUTR5, genedata.ModAI))
	assert.Equal(t, 0.1, g.Rate(genedata.RegionUTR5, genedata.ModM6A))
	assert.Equal(t, 0.85, g.Rate(genedata.RegionUTR5, genedata.ModUnmod))
	assert.Equal(t, 0.3, g.Rate(genedata.RegionExon, genedata.ModAI))
	assert.Zero(t, g.Rate(genedata.RegionExon, genedata.ModM6A))

	assert.InDelta(t, 0.15, g.Rate(genedata.RegionUTR5, genedata.ModEither), 1e-12)
	assert.Equal(t, 0.3, g.Rate(genedata.RegionExon, genedata.ModEither))
	assert.Zero(t, g.Rate(genedata.RegionIntron, genedata.ModEither))

	// Total cpm averages the positive region cpms; total rates average
	// all four concrete regions, absent ones contributing 0.
	assert.Equal(t, 27.5, g.CPM(genedata.RegionTotal))
	assert.InDelta(t, 0.0875, g.Rate(genedata.RegionTotal, genedata.ModAI), 1e-12)
	assert.Equal(t, 0.025, g.Rate(genedata.RegionTotal, genedata.ModM6A))
	assert.InDelta(t, 0.1125, g.Rate(genedata.RegionTotal, genedata.ModEither), 1e-12)
}

func TestRecompute_FirstRowWins(t *testing.T) {
	rows := []genedata.RawFeature{
		{Feature: "Exon", Modification: "m6A", CPK: 5, MR: 0.2},
		{Feature: "Exon", Modification: "m6A", CPK: 7, MR: 0.9},
	}

	g := Recompute(rows)
	assert.Equal(t, 0.2, g.Rate(genedata.RegionExon, genedata.ModM6A))
	assert.Equal(t, 6.0, g.CPM(genedata.RegionExon))
}

func TestRecompute_EitherClamped(t *testing.T) {
	rows := []genedata.RawFeature{
		{Feature: "Intron", Modification: "Inosine", CPK: 1, MR: 0.7},
		{Feature: "Intron", Modification: "m6A", CPK: 1, MR: 0.6},
	}

	g := Recompute(rows)
	assert.Equal(t, 1.0, g.Rate(genedata.RegionIntron, genedata.ModEither))
}

func TestRecompute_CaseInsensitiveModification(t *testing.T) {
	rows := []genedata.RawFeature{
		{Feature: "exon", Modification: "INOSINE", CPK: 2, MR: 0.4},
		{Feature: "EXON", Modification: "M6a", CPK: 2, MR: 0.1},
	}

	g := Recompute(rows)
	assert.Equal(t, 0.4, g.Rate(genedata.RegionExon, genedata.ModAI))
	assert.Equal(t, 0.1, g.Rate(genedata.RegionExon, genedata.ModM6A))
}

func TestRecompute_IgnoresUnknownFeatures(t *testing.T) {
	rows := []genedata.RawFeature{
		{Feature: "Promoter", Modification: "m6A", CPK: 99, MR: 0.9},
		{Feature: "Exon", Modification: "m6A", CPK: 4, MR: 0.1},
	}

	g := Recompute(rows)
	assert.Equal(t, 0.1, g.Rate(genedata.RegionExon, genedata.ModM6A))
	assert.Equal(t, 4.0, g.CPM(genedata.RegionExon))
	assert.Equal(t, 4.0, g.CPM(genedata.RegionTotal))
}

func TestRecompute_Empty(t *testing.T) {
	g := Recompute(nil)

	for _, region := range genedata.Regions() {
		assert.Zero(t, g.CPM(region), region)
		for _, mod := range genedata.Modifications() {
			assert.Zero(t, g.Rate(region, mod), "%s/%s", region, mod)
		}
	}
}

func TestRecompute_AllZeroCPK(t *testing.T) {
	rows := []genedata.RawFeature{
		{Feature: "UTR_3", Modification: "Unmod", CPK: 0, MR: 0.5},
	}

	g := Recompute(rows)
	assert.Zero(t, g.CPM(genedata.RegionUTR3))
	assert.Zero(t, g.CPM(genedata.RegionTotal))
	assert.Equal(t, 0.5, g.Rate(genedata.RegionUTR3, genedata.ModUnmod))
}

func testTable() *Table {
	return &Table{
		Gene:    "ACTB",
		Samples: []string{"MR01_1", "MR01_2"},
		Rows: []TableRow{
			{
				Feature:      "UTR_5",
				Modification: "m6A",
				Count:        map[string]int64{"MR01_1": 20, "MR01_2": 15},
				CPK:          map[string]float64{"MR01_1": 2.0, "MR01_2": 1.5},
				MR:           map[string]float64{"MR01_1": 0.1, "MR01_2": 0.08},
			},
			{
				Feature:      "Exon",
				Modification: "Inosine",
				Count:        map[string]int64{"MR01_1": 50, "MR01_2": 45},
				CPK:          map[string]float64{"MR01_1": 40, "MR01_2": 38},
				MR:           map[string]float64{"MR01_1": 0.3, "MR01_2": 0.25},
			},
		},
	}
}

func TestResolveRows(t *testing.T) {
	table := testTable()

	rows := ResolveRows(table, "MR01_2")
	require.Len(t, rows, 2)

	assert.Equal(t, genedata.RawFeature{
		Feature:      "UTR_5",
		Modification: "m6A",
		Count:        15,
		CPK:          1.5,
		MR:           0.08,
	}, rows[0])
	assert.Equal(t, "Exon", rows[1].Feature)
	assert.Equal(t, 0.25, rows[1].MR)
}

func TestBuildRecord(t *testing.T) {
	table := testTable()

	g := BuildRecord(table, "MR01_1")

	assert.Equal(t, "ACTB", g.Name)
	assert.Equal(t, 0.1, g.Rate(genedata.RegionUTR5, genedata.ModM6A))
	assert.Equal(t, 0.3, g.Rate(genedata.RegionExon, genedata.ModAI))
	assert.Equal(t, 2.0, g.CPM(genedata.RegionUTR5))
	assert.Equal(t, 40.0, g.CPM(genedata.RegionExon))
	assert.Equal(t, 21.0, g.CPM(genedata.RegionTotal))

	require.Len(t, g.RawData, 2)
	assert.Equal(t, int64(20), g.RawData[0].Count)
	assert.Equal(t, 0.3, g.RawData[1].MR)
}

func TestBuildRecord_MatchesRecompute(t *testing.T) {
	table := testTable()

	g := BuildRecord(table, "MR01_2")
	want := Recompute(g.RawData)

	for _, region := range genedata.Regions() {
		assert.Equal(t, want.CPM(region), g.CPM(region), region)
		for _, mod := range genedata.Modifications() {
			assert.Equal(t, want.Rate(region, mod), g.Rate(region, mod), "%s/%s", region, mod)
		}
	}
}
