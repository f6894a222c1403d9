package ingest

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestValidateWay(t *testing.T) {
	tests := []struct {
		name    string
		points  []RawPoint
		wantErr bool
	}{
		{"valid", []RawPoint{{true, 0, 0}, {false, 1, 0}}, false},
		{"empty", nil, true},
		{"single point", []RawPoint{{true, 0, 0}}, true},
		{"zero length", []RawPoint{{true, 2, 2}, {false, 2, 2}, {true, 2, 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWay(Way{Name: "A1", Points: tt.points})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateWay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrKindDegenerate) {
					t.Errorf("ValidateWay() error = %v, want degenerate geometry", err)
				}
				if IsFatal(err) {
					t.Errorf("IsFatal(%v) = true, want false", err)
				}
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	square := Polygon{Exterior: orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}
	sliver := Polygon{Exterior: orb.Ring{{0, 0}, {1, 0}, {0, 0}}}

	got, err := ValidateRegion(Region{Name: "Devon", Polygons: []Polygon{sliver, square}})
	if err != nil {
		t.Fatalf("ValidateRegion() error = %v", err)
	}
	if len(got.Polygons) != 1 {
		t.Errorf("ValidateRegion() kept %d polygons, want 1", len(got.Polygons))
	}

	_, err = ValidateRegion(Region{Name: "Rockall", Polygons: []Polygon{sliver}})
	if !errors.Is(err, ErrKindDegenerate) {
		t.Errorf("ValidateRegion() error = %v, want degenerate geometry", err)
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err   error
		kind  error
		fatal bool
	}{
		{&ErrMalformedInput{Reason: "bad"}, ErrKindMalformed, true},
		{&ErrIoFailure{Path: "x", Op: "open"}, ErrKindIo, true},
		{&ErrSchemaMismatch{Path: "x", Reason: "version"}, ErrKindSchema, true},
		{&ErrDegenerateGeometry{Kind: RecordPolygon}, ErrKindDegenerate, false},
	}
	kinds := []error{ErrKindMalformed, ErrKindIo, ErrKindSchema, ErrKindDegenerate}
	for _, tt := range tests {
		for _, k := range kinds {
			if got := errors.Is(tt.err, k); got != (k == tt.kind) {
				t.Errorf("errors.Is(%v, %v) = %v", tt.err, k, got)
			}
		}
		if got := IsFatal(tt.err); got != tt.fatal {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.fatal)
		}
	}
	if IsFatal(nil) {
		t.Error("IsFatal(nil) = true")
	}
}
