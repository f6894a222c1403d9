package ingest

import (
	"errors"
	"testing"
)

// TestParseClass tests road class decoding
func TestParseClass(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Class
		wantErr bool
	}{
		{"a road", "A Road", ClassARoad, false},
		{"b road", "B Road", ClassBRoad, false},
		{"motorway", "Motorway", ClassMotorway, false},
		{"minor", "Minor Road", ClassMinor, false},
		{"unclassified", "Unclassified", ClassUnclassified, false},
		{"not classified", "Not Classified", ClassUnclassified, false},
		{"unknown", "Unknown", ClassUnknown, false},
		{"padded", "  A Road ", ClassARoad, false},
		{"empty", "", 0, true},
		{"typo", "A-Road", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClass(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClass() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrKindMalformed) {
					t.Errorf("ParseClass() error kind = %v, want malformed input", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseClass() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestParseForm tests form-of-way decoding
func TestParseForm(t *testing.T) {
	tests := []struct {
		input   string
		want    Form
		wantErr bool
	}{
		{"Single Carriageway", FormSingleCarriageway, false},
		{"Dual Carriageway", FormDualCarriageway, false},
		{"Collapsed Dual Carriageway", FormCollapsedDualCarriageway, false},
		{"Roundabout", FormRoundabout, false},
		{"Slip Road", FormSlipRoad, false},
		{"Guided Busway", FormTransitWay, false},
		{"Layby", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseForm(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseForm() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseForm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegionFromID(t *testing.T) {
	tests := []struct {
		id     int
		want   GeoRegion
		wantOK bool
	}{
		{155, RegionWesternEurope, true},
		{154, RegionNorthernEurope, true},
		{53, RegionAustraliaAndNewZealand, true},
		{419, RegionLatinAmericaAndCaribbean, true},
		{0, 0, false},
		{826, 0, false},
	}

	for _, tt := range tests {
		got, ok := RegionFromID(tt.id)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("RegionFromID(%d) = %v, %v, want %v, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRegionColour(t *testing.T) {
	seen := map[GeoRegion]bool{}
	for _, r := range regionIDs {
		if seen[r] {
			t.Fatalf("region %v mapped twice", r)
		}
		seen[r] = true
		if c := r.Colour(); c.A != 0xFF {
			t.Errorf("%v colour alpha = %d, want opaque", r, c.A)
		}
		if r.String() == "" {
			t.Errorf("region %d has no name", int(r))
		}
	}
	if len(seen) != len(regionPalette) {
		t.Errorf("%d regions but %d palette entries", len(seen), len(regionPalette))
	}
	if got := RegionWesternEurope.Colour(); got != regionPalette[16] {
		t.Errorf("WesternEurope colour = %v, want %v", got, regionPalette[16])
	}
}
