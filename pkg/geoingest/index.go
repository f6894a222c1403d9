package geoingest

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Layer identifies which dataset layer an indexed path came from.
type Layer int

const (
	LayerWays Layer = iota + 1
	LayerRegions
	LayerBoundaries
)

func (l Layer) String() string {
	switch l {
	case LayerWays:
		return "ways"
	case LayerRegions:
		return "regions"
	case LayerBoundaries:
		return "boundaries"
	default:
		return "unknown"
	}
}

// IndexedPath is one render path held by a SpatialIndex.
type IndexedPath struct {
	Layer Layer
	Class Class // LayerWays only
	Index int   // position within the layer (way within its class, region, or boundary)
	Path  *RenderPath
}

// Bounds implements rtreego.Spatial.
func (p *IndexedPath) Bounds() rtreego.Rect {
	return boundRect(p.Path.Bound())
}

// indexedLocation wraps a settlement for R-tree storage.
type indexedLocation struct {
	id  LocationID
	loc Location
}

// Bounds implements rtreego.Spatial.
func (l *indexedLocation) Bounds() rtreego.Rect {
	return rtreego.Point{l.loc.X, l.loc.Y}.ToRect(minExtent / 2)
}

// minExtent is the smallest side of an indexed rectangle. R-tree rectangles
// must have non-zero size, so points and axis-aligned lines are padded.
const minExtent = 0.0001

func boundRect(b orb.Bound) rtreego.Rect {
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
	return rect
}

// SpatialIndex answers viewport and nearest-settlement queries over a
// Dataset in O(log n).
//
// Example:
//
//	idx := geoingest.NewSpatialIndex(ds)
//	view := orb.Bound{Min: orb.Point{500, 150}, Max: orb.Point{560, 200}}
//	for _, p := range idx.PathsInBounds(view) {
//	    draw(p.Path)
//	}
type SpatialIndex struct {
	paths     *rtreego.Rtree
	locations *rtreego.Rtree
	pathCount int
	locCount  int
}

// NewSpatialIndex builds render paths for every layer of d and indexes
// them together with its settlements. Settlement IDs are their positions
// in d.Settlements, matching an Arena built from the same slice.
func NewSpatialIndex(d *Dataset) *SpatialIndex {
	var paths []rtreego.Spatial
	add := func(p *IndexedPath) {
		if p.Path == nil || p.Path.Empty() {
			return
		}
		paths = append(paths, p)
	}

	for class, ways := range d.WayPaths() {
		for i, p := range ways {
			add(&IndexedPath{Layer: LayerWays, Class: class, Index: i, Path: p})
		}
	}
	for i, rp := range d.RegionPaths() {
		for _, p := range rp {
			add(&IndexedPath{Layer: LayerRegions, Index: i, Path: p})
		}
	}
	for i, p := range d.BoundaryPaths() {
		add(&IndexedPath{Layer: LayerBoundaries, Index: i, Path: p})
	}

	locs := make([]rtreego.Spatial, 0, len(d.Settlements))
	for i, l := range d.Settlements {
		locs = append(locs, &indexedLocation{id: LocationID(i), loc: l})
	}

	// bulk load gives a better packed tree than repeated Insert
	return &SpatialIndex{
		paths:     rtreego.NewTree(2, 25, 50, paths...),
		locations: rtreego.NewTree(2, 25, 50, locs...),
		pathCount: len(paths),
		locCount:  len(locs),
	}
}

// PathsInBounds returns every indexed path whose bounds intersect b.
// Results are in no particular order.
func (s *SpatialIndex) PathsInBounds(b orb.Bound) []IndexedPath {
	if s.pathCount == 0 {
		return nil
	}
	found := s.paths.SearchIntersect(boundRect(b))
	out := make([]IndexedPath, 0, len(found))
	for _, sp := range found {
		p := sp.(*IndexedPath)
		// padding can widen a rectangle past the real bounds
		if p.Path.Bound().Intersects(b) {
			out = append(out, *p)
		}
	}
	return out
}

// NearestLocation returns the settlement closest to (x, y).
// ok is false when the index holds no settlements.
func (s *SpatialIndex) NearestLocation(x, y float64) (id LocationID, loc Location, ok bool) {
	if s.locCount == 0 {
		return 0, Location{}, false
	}
	sp := s.locations.NearestNeighbor(rtreego.Point{x, y})
	if sp == nil {
		return 0, Location{}, false
	}
	l := sp.(*indexedLocation)
	return l.id, l.loc, true
}

// LocationsInBounds returns the IDs of settlements inside b.
func (s *SpatialIndex) LocationsInBounds(b orb.Bound) []LocationID {
	if s.locCount == 0 {
		return nil
	}
	found := s.locations.SearchIntersect(boundRect(b))
	out := make([]LocationID, 0, len(found))
	for _, sp := range found {
		l := sp.(*indexedLocation)
		if b.Contains(orb.Point{l.loc.X, l.loc.Y}) {
			out = append(out, l.id)
		}
	}
	return out
}

// Len is the number of indexed paths and settlements.
func (s *SpatialIndex) Len() (paths, locations int) {
	return s.pathCount, s.locCount
}
