// Package genedata defines the per-gene RNA-modification data model.
package genedata

// RawFeature is one row of a gene's raw feature table, resolved for a
// single sample.
type RawFeature struct {
	Feature      string  `json:"feature"`      // Region as written in the raw table (e.g. UTR_5)
	Modification string  `json:"modification"` // Unmod, m6A, or Inosine
	Count        int64   `json:"count"`        // Read count
	CPK          float64 `json:"cpk"`          // Counts per kilobase
	MR           float64 `json:"mr"`           // Modification rate, typically [0, 1]
}

// GeneRecord holds one gene's aggregated modification statistics for a
// single sample. A numeric field absent from the source JSON unmarshals
// to 0; absence and 0 are equivalent everywhere downstream.
type GeneRecord struct {
	ID         int64  `json:"id"`                   // Unique within the sample's dataset
	Name       string `json:"name"`                 // Display name
	Chromosome string `json:"chromosome,omitempty"` // Optional, may be empty

	UTR5AIRate     float64 `json:"utr5_ai_rate"`
	UTR5M6ARate    float64 `json:"utr5_m6a_rate"`
	UTR5EitherRate float64 `json:"utr5_either_rate"`
	UTR5UnmodRate  float64 `json:"utr5_unmod_rate"`
	UTR5CPM        float64 `json:"utr5_cpm"`

	UTR3AIRate     float64 `json:"utr3_ai_rate"`
	UTR3M6ARate    float64 `json:"utr3_m6a_rate"`
	UTR3EitherRate float64 `json:"utr3_either_rate"`
	UTR3UnmodRate  float64 `json:"utr3_unmod_rate"`
	UTR3CPM        float64 `json:"utr3_cpm"`

	ExonAIRate     float64 `json:"exon_ai_rate"`
	ExonM6ARate    float64 `json:"exon_m6a_rate"`
	ExonEitherRate float64 `json:"exon_either_rate"`
	ExonUnmodRate  float64 `json:"exon_unmod_rate"`
	ExonCPM        float64 `json:"exon_cpm"`

	IntronAIRate     float64 `json:"intron_ai_rate"`
	IntronM6ARate    float64 `json:"intron_m6a_rate"`
	IntronEitherRate float64 `json:"intron_either_rate"`
	IntronUnmodRate  float64 `json:"intron_unmod_rate"`
	IntronCPM        float64 `json:"intron_cpm"`

	TotalAIRate     float64 `json:"total_ai_rate"`
	TotalM6ARate    float64 `json:"total_m6a_rate"`
	TotalEitherRate float64 `json:"total_either_rate"`
	TotalCPM        float64 `json:"total_cpm"`

	RawData []RawFeature `json:"raw_data,omitempty"` // Ordered per-feature rows, may be empty
}

// rateKey pairs a region with a modification for accessor lookup.
type rateKey struct {
	region Region
	mod    Modification
}

// rateFields maps every stored (region, modification) pair to its record
// field. The table replaces dynamic field-name splicing: a pair outside
// it (such as total/unmod, which is never stored) reads as 0.
var rateFields = map[rateKey]func(*GeneRecord) *float64{
	{RegionUTR5, ModAI}:       func(g *GeneRecord) *float64 { return &g.UTR5AIRate },
	{RegionUTR5, ModM6A}:      func(g *GeneRecord) *float64 { return &g.UTR5M6ARate },
	{RegionUTR5, ModEither}:   func(g *GeneRecord) *float64 { return &g.UTR5EitherRate },
	{RegionUTR5, ModUnmod}:    func(g *GeneRecord) *float64 { return &g.UTR5UnmodRate },
	{RegionUTR3, ModAI}:       func(g *GeneRecord) *float64 { return &g.UTR3AIRate },
	{RegionUTR3, ModM6A}:      func(g *GeneRecord) *float64 { return &g.UTR3M6ARate },
	{RegionUTR3, ModEither}:   func(g *GeneRecord) *float64 { return &g.UTR3EitherRate },
	{RegionUTR3, ModUnmod}:    func(g *GeneRecord) *float64 { return &g.UTR3UnmodRate },
	{RegionExon, ModAI}:       func(g *GeneRecord) *float64 { return &g.ExonAIRate },
	{RegionExon, ModM6A}:      func(g *GeneRecord) *float64 { return &g.ExonM6ARate },
	{RegionExon, ModEither}:   func(g *GeneRecord) *float64 { return &g.ExonEitherRate },
	{RegionExon, ModUnmod}:    func(g *GeneRecord) *float64 { return &g.ExonUnmodRate },
	{RegionIntron, ModAI}:     func(g *GeneRecord) *float64 { return &g.IntronAIRate },
	{RegionIntron, ModM6A}:    func(g *GeneRecord) *float64 { return &g.IntronM6ARate },
	{RegionIntron, ModEither}: func(g *GeneRecord) *float64 { return &g.IntronEitherRate },
	{RegionIntron, ModUnmod}:  func(g *GeneRecord) *float64 { return &g.IntronUnmodRate },
	{RegionTotal, ModAI}:      func(g *GeneRecord) *float64 { return &g.TotalAIRate },
	{RegionTotal, ModM6A}:     func(g *GeneRecord) *float64 { return &g.TotalM6ARate },
	{RegionTotal, ModEither}:  func(g *GeneRecord) *float64 { return &g.TotalEitherRate },
}

// cpmFields maps each region to its expression field.
var cpmFields = map[Region]func(*GeneRecord) *float64{
	RegionUTR5:   func(g *GeneRecord) *float64 { return &g.UTR5CPM },
	RegionUTR3:   func(g *GeneRecord) *float64 { return &g.UTR3CPM },
	RegionExon:   func(g *GeneRecord) *float64 { return &g.ExonCPM },
	RegionIntron: func(g *GeneRecord) *float64 { return &g.IntronCPM },
	RegionTotal:  func(g *GeneRecord) *float64 { return &g.TotalCPM },
}

// Rate returns the modification rate stored for the given region and
// type. Pairs with no stored field return 0.
func (g *GeneRecord) Rate(region Region, mod Modification) float64 {
	if f, ok := rateFields[rateKey{region, mod}]; ok {
		return *f(g)
	}
	return 0
}

// SetRate stores a modification rate for the given region and type.
// Pairs with no stored field are ignored.
func (g *GeneRecord) SetRate(region Region, mod Modification, v float64) {
	if f, ok := rateFields[rateKey{region, mod}]; ok {
		*f(g) = v
	}
}

// CPM returns the expression level stored for the given region.
func (g *GeneRecord) CPM(region Region) float64 {
	if f, ok := cpmFields[region]; ok {
		return *f(g)
	}
	return 0
}

// SetCPM stores an expression level for the given region.
func (g *GeneRecord) SetCPM(region Region, v float64) {
	if f, ok := cpmFields[region]; ok {
		*f(g) = v
	}
}
