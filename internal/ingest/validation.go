package ingest

import (
	"fmt"
)

// ValidateWay reports a zero-length way: fewer than 2 points, or every point identical
func ValidateWay(w Way) error {
	if len(w.Points) < 2 {
		return &ErrDegenerateGeometry{Kind: RecordLine, Name: w.Name,
			Reason: fmt.Sprintf("%d point(s)", len(w.Points))}
	}
	first := w.Points[0]
	for _, p := range w.Points[1:] {
		if p.X != first.X || p.Y != first.Y {
			return nil
		}
	}
	return &ErrDegenerateGeometry{Kind: RecordLine, Name: w.Name, Reason: "zero length"}
}

// ValidatePolygon reports an exterior ring with fewer than 3 points
func ValidatePolygon(p Polygon) error {
	if n := openLen(p.Exterior); n < 3 {
		return &ErrDegenerateGeometry{Kind: RecordPolygon,
			Reason: fmt.Sprintf("exterior ring has %d point(s)", n)}
	}
	return nil
}

// ValidateRegion drops degenerate polygons from a region.
// The region itself is degenerate when nothing remains.
func ValidateRegion(r Region) (Region, error) {
	kept := r.Polygons[:0:0]
	for _, p := range r.Polygons {
		if ValidatePolygon(p) == nil {
			kept = append(kept, p)
		}
	}
	r.Polygons = kept
	if len(kept) == 0 {
		return r, &ErrDegenerateGeometry{Kind: RecordPolygon, Name: r.Name, Reason: "no usable polygons"}
	}
	return r, nil
}
