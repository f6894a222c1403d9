package geoingest

import (
	"slices"
	"testing"
)

func TestArenaSelection(t *testing.T) {
	a := NewArena(sampleDataset().Settlements)
	if a.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Len())
	}

	a.Select(2)
	a.Select(0)
	a.Select(0)
	a.Select(99) // ignored
	if got := a.Selected(); !slices.Equal(got, []LocationID{0, 2}) {
		t.Errorf("Selected() = %v, want [0 2]", got)
	}
	if !a.IsSelected(2) || a.IsSelected(1) {
		t.Error("IsSelected() disagrees with Selected()")
	}
	a.Deselect(2)
	if a.IsSelected(2) {
		t.Error("Deselect() left id selected")
	}
	a.ClearSelection()
	if got := a.Selected(); len(got) != 0 {
		t.Errorf("Selected() after clear = %v", got)
	}
}

func TestArenaOwnership(t *testing.T) {
	a := NewArena(sampleDataset().Settlements)
	const red, blue OwnerID = 1, 2

	tests := []struct {
		name    string
		id      LocationID
		owner   OwnerID
		wantErr bool
	}{
		{"red takes london", 0, red, false},
		{"red takes oxford", 2, red, false},
		{"red again is fine", 0, red, false},
		{"blue cannot take london", 0, blue, true},
		{"blue takes hamlet", 3, blue, false},
		{"out of range", 4, blue, true},
		{"negative", -1, blue, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Assign(tt.id, tt.owner)
			if (err != nil) != tt.wantErr {
				t.Errorf("Assign(%d, %d) error = %v, wantErr %v", tt.id, tt.owner, err, tt.wantErr)
			}
		})
	}

	if got := a.Owned(red); !slices.Equal(got, []LocationID{0, 2}) {
		t.Errorf("Owned(red) = %v, want [0 2]", got)
	}
	if got := a.Population(a.Owned(red)); got != 8150000 {
		t.Errorf("Population(red) = %d, want 8150000", got)
	}
	if o, ok := a.Owner(3); !ok || o != blue {
		t.Errorf("Owner(3) = %v, %v, want blue", o, ok)
	}

	a.Release(0)
	if err := a.Assign(0, blue); err != nil {
		t.Errorf("Assign() after Release() error = %v", err)
	}
	if got := a.Owned(red); !slices.Equal(got, []LocationID{2}) {
		t.Errorf("Owned(red) after transfer = %v, want [2]", got)
	}
}

func TestArenaIsolatedFromSource(t *testing.T) {
	locs := sampleDataset().Settlements
	a := NewArena(locs)
	locs[0].Name = "Renamed"
	if l, _ := a.Get(0); l.Name != "London" {
		t.Errorf("Get(0) = %s, want arena to keep its own copy", l.Name)
	}
	if _, ok := a.Get(10); ok {
		t.Error("Get() returned a location for an unknown id")
	}
}
