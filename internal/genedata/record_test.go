package genedata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateAccessors(t *testing.T) {
	g := &GeneRecord{ID: 1, Name: "KRAS"}

	// Every stored pair must round-trip through the accessor table.
	for _, r := range Regions() {
		for _, m := range Modifications() {
			g.SetRate(r, m, 0.25)
			assert.Equal(t, 0.25, g.Rate(r, m), "%s/%s", r, m)
			g.SetRate(r, m, 0)
		}
		g.SetCPM(r, 12.5)
		assert.Equal(t, 12.5, g.CPM(r), "%s cpm", r)
		g.SetCPM(r, 0)
	}

	// Unmod is stored for concrete regions only.
	for _, r := range AggregationRegions() {
		g.SetRate(r, ModUnmod, 0.9)
		assert.Equal(t, 0.9, g.Rate(r, ModUnmod), "%s unmod", r)
		g.SetRate(r, ModUnmod, 0)
	}
	g.SetRate(RegionTotal, ModUnmod, 0.9)
	assert.Equal(t, 0.0, g.Rate(RegionTotal, ModUnmod), "total/unmod has no stored field")
}

func TestRateAccessorsDistinctFields(t *testing.T) {
	// Setting one pair must not leak into any other.
	g := &GeneRecord{ID: 1, Name: "A"}
	g.SetRate(RegionExon, ModM6A, 0.4)

	assert.Equal(t, 0.4, g.ExonM6ARate)
	assert.Zero(t, g.ExonAIRate)
	assert.Zero(t, g.IntronM6ARate)
	assert.Zero(t, g.TotalM6ARate)
}

func TestGeneRecordJSONWireNames(t *testing.T) {
	g := &GeneRecord{
		ID:         7,
		Name:       "ACTB",
		Chromosome: "chr7",
		UTR5AIRate: 0.1,
		UTR5CPM:    42,
		RawData: []RawFeature{
			{Feature: "UTR_5", Modification: "Inosine", Count: 10, CPK: 3.5, MR: 0.1},
		},
	}

	out, err := json.Marshal(g)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))

	assert.Equal(t, float64(7), m["id"])
	assert.Equal(t, "ACTB", m["name"])
	assert.Equal(t, "chr7", m["chromosome"])
	assert.Equal(t, 0.1, m["utr5_ai_rate"])
	assert.Equal(t, float64(42), m["utr5_cpm"])
	// Zero-valued stats stay present so exports carry the full column set.
	assert.Contains(t, m, "intron_either_rate")
	assert.Contains(t, m, "total_cpm")

	raw, ok := m["raw_data"].([]any)
	require.True(t, ok)
	require.Len(t, raw, 1)
	row := raw[0].(map[string]any)
	assert.Equal(t, "Inosine", row["modification"])
	assert.Equal(t, 3.5, row["cpk"])
}

func TestGeneRecordMissingFieldsDefaultZero(t *testing.T) {
	// Records in the wild may omit any numeric field; absent means 0.
	var g GeneRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "name": "GAPDH"}`), &g))

	assert.Equal(t, int64(3), g.ID)
	assert.Empty(t, g.Chromosome)
	for _, r := range Regions() {
		for _, m := range Modifications() {
			assert.Zero(t, g.Rate(r, m))
		}
		assert.Zero(t, g.CPM(r))
	}
	assert.Empty(t, g.RawData)
}
