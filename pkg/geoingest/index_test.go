package geoingest

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestSpatialIndexPathsInBounds(t *testing.T) {
	idx := NewSpatialIndex(sampleDataset())
	paths, locs := idx.Len()
	// A1, M25, one Devon polygon, one boundary
	if paths != 4 || locs != 4 {
		t.Fatalf("Len() = %d paths, %d locations, want 4 and 4", paths, locs)
	}

	tests := []struct {
		name   string
		bound  orb.Bound
		layers map[Layer]int
	}{
		{
			name:   "everything",
			bound:  orb.Bound{Min: orb.Point{-100, -100}, Max: orb.Point{100, 100}},
			layers: map[Layer]int{LayerWays: 2, LayerRegions: 1, LayerBoundaries: 1},
		},
		{
			name:   "east of devon",
			bound:  orb.Bound{Min: orb.Point{15, -1}, Max: orb.Point{25, 1}},
			layers: map[Layer]int{LayerWays: 1},
		},
		{
			name:   "boundary only",
			bound:  orb.Bound{Min: orb.Point{-6, 20}, Max: orb.Point{-4, 25}},
			layers: map[Layer]int{LayerBoundaries: 1},
		},
		{
			name:   "empty sea",
			bound:  orb.Bound{Min: orb.Point{200, 200}, Max: orb.Point{210, 210}},
			layers: map[Layer]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[Layer]int{}
			for _, p := range idx.PathsInBounds(tt.bound) {
				if !p.Path.Bound().Intersects(tt.bound) {
					t.Errorf("%v path %d bound %v misses query", p.Layer, p.Index, p.Path.Bound())
				}
				got[p.Layer]++
			}
			for _, l := range []Layer{LayerWays, LayerRegions, LayerBoundaries} {
				if got[l] != tt.layers[l] {
					t.Errorf("%v: %d paths, want %d", l, got[l], tt.layers[l])
				}
			}
		})
	}
}

func TestSpatialIndexWayClass(t *testing.T) {
	idx := NewSpatialIndex(sampleDataset())
	var ways []IndexedPath
	for _, p := range idx.PathsInBounds(orb.Bound{Min: orb.Point{-1, 6}, Max: orb.Point{1, 8}}) {
		if p.Layer == LayerWays {
			ways = append(ways, p)
		}
	}
	if len(ways) != 1 || ways[0].Class != ClassMotorway {
		t.Errorf("ways in bounds = %+v, want the M25", ways)
	}
}

func TestSpatialIndexNearestLocation(t *testing.T) {
	ds := sampleDataset()
	idx := NewSpatialIndex(ds)

	tests := []struct {
		name string
		x, y float64
		want string
	}{
		{"at london", 530, 180, "London"},
		{"near westminster", 531.4, 180, "Westminster"},
		{"near oxford", 440, 210, "Oxford"},
		{"far north", 400, 1000, "Hamlet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, loc, ok := idx.NearestLocation(tt.x, tt.y)
			if !ok {
				t.Fatal("NearestLocation() found nothing")
			}
			if loc.Name != tt.want {
				t.Errorf("NearestLocation() = %s, want %s", loc.Name, tt.want)
			}
			if ds.Settlements[id].Name != loc.Name {
				t.Errorf("id %d does not index %s", id, loc.Name)
			}
		})
	}

	ids := idx.LocationsInBounds(orb.Bound{Min: orb.Point{529, 179}, Max: orb.Point{532, 181}})
	if len(ids) != 2 {
		t.Errorf("LocationsInBounds() = %v, want London and Westminster", ids)
	}
}

func TestSpatialIndexEmpty(t *testing.T) {
	idx := NewSpatialIndex(&Dataset{})
	if got := idx.PathsInBounds(orb.Bound{Max: orb.Point{1, 1}}); len(got) != 0 {
		t.Errorf("PathsInBounds() = %v, want none", got)
	}
	if _, _, ok := idx.NearestLocation(0, 0); ok {
		t.Error("NearestLocation() found a location in an empty index")
	}
}
