package genedata

import "testing"

func TestParseRegion(t *testing.T) {
	tests := []struct {
		input   string
		want    Region
		wantErr bool
	}{
		{"utr5", RegionUTR5, false},
		{"UTR5", RegionUTR5, false},
		{"utr3", RegionUTR3, false},
		{"exon", RegionExon, false},
		{"Intron", RegionIntron, false},
		{"total", RegionTotal, false},
		{"", "", true},
		{"cds", "", true},
		{"utr_5", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRegion(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRegion(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegion(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRegion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseModification(t *testing.T) {
	tests := []struct {
		input   string
		want    Modification
		wantErr bool
	}{
		{"ai", ModAI, false},
		{"AI", ModAI, false},
		{"m6a", ModM6A, false},
		{"M6A", ModM6A, false},
		{"either", ModEither, false},
		{"", "", true},
		{"inosine", "", true},
		// unmod is stored on records but is not a selectable type.
		{"unmod", "", true},
	}

	for _, tt := range tests {
		got, err := ParseModification(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseModification(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseModification(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseModification(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRegionOrder(t *testing.T) {
	regions := Regions()
	if len(regions) != 5 {
		t.Fatalf("expected 5 regions, got %d", len(regions))
	}
	if regions[0] != RegionUTR5 || regions[4] != RegionTotal {
		t.Errorf("unexpected canonical order: %v", regions)
	}

	concrete := AggregationRegions()
	if len(concrete) != 4 {
		t.Fatalf("expected 4 aggregation regions, got %d", len(concrete))
	}
	for _, r := range concrete {
		if r == RegionTotal {
			t.Error("total must not be an aggregation region")
		}
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{RegionUTR5.Label(), "5' UTR"},
		{RegionUTR3.Label(), "3' UTR"},
		{RegionExon.Label(), "Exonic"},
		{RegionIntron.Label(), "Intronic"},
		{RegionTotal.Label(), "Total Gene"},
		{ModAI.Label(), "A-to-I"},
		{ModM6A.Label(), "m6A"},
		{ModEither.Label(), "Either Modification"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("label = %q, want %q", tt.got, tt.want)
		}
	}
}
