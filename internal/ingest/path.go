package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/peterstace/simplefeatures/geom"
)

// PathOp is a drawing operation
type PathOp uint8

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpClose
)

func (op PathOp) String() string {
	switch op {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	case OpClose:
		return "Z"
	default:
		return fmt.Sprintf("PathOp(%d)", int(op))
	}
}

// PathCmd is one operation of a RenderPath. Close carries no coordinate.
type PathCmd struct {
	Op   PathOp
	X, Y float64
}

// RenderPath is an immutable drawable path built from a Way or Polygon
type RenderPath struct {
	cmds  []PathCmd
	bound orb.Bound
}

// Commands returns a copy of the path's operations.
func (p *RenderPath) Commands() []PathCmd {
	out := make([]PathCmd, len(p.cmds))
	copy(out, p.cmds)
	return out
}

// Each calls fn for every operation without copying.
func (p *RenderPath) Each(fn func(PathCmd)) {
	for _, c := range p.cmds {
		fn(c)
	}
}

// Len is the number of operations.
func (p *RenderPath) Len() int { return len(p.cmds) }

// Empty reports whether the path has no operations.
func (p *RenderPath) Empty() bool { return len(p.cmds) == 0 }

// Bound is the bounding box of every coordinate in the path.
func (p *RenderPath) Bound() orb.Bound { return p.bound }

// Subpath is one move-to run of a RenderPath
type Subpath struct {
	Points orb.LineString
	Closed bool
}

// Subpaths splits the path at every move-to.
func (p *RenderPath) Subpaths() []Subpath {
	var out []Subpath
	for _, c := range p.cmds {
		switch c.Op {
		case OpMoveTo:
			out = append(out, Subpath{Points: orb.LineString{{c.X, c.Y}}})
		case OpLineTo:
			if len(out) == 0 {
				out = append(out, Subpath{})
			}
			last := &out[len(out)-1]
			last.Points = append(last.Points, orb.Point{c.X, c.Y})
		case OpClose:
			if len(out) > 0 {
				out[len(out)-1].Closed = true
			}
		}
	}
	return out
}

// Contains reports whether (x, y) is filled under the even-odd rule.
// Open subpaths never fill.
func (p *RenderPath) Contains(x, y float64) bool {
	pt := orb.Point{x, y}
	if p.Empty() || !p.bound.Contains(pt) {
		return false
	}
	inside := false
	for _, sp := range p.Subpaths() {
		if !sp.Closed || len(sp.Points) < 3 {
			continue
		}
		ring := orb.Ring(sp.Points)
		if ring[0] != ring[len(ring)-1] {
			ring = append(ring.Clone(), ring[0])
		}
		if planar.RingContains(ring, pt) {
			inside = !inside
		}
	}
	return inside
}

// pathBuilder accumulates commands and bounds
type pathBuilder struct {
	cmds  []PathCmd
	bound orb.Bound
}

func (b *pathBuilder) extend(x, y float64) {
	pt := orb.Point{x, y}
	if len(b.cmds) == 0 {
		b.bound = orb.Bound{Min: pt, Max: pt}
		return
	}
	b.bound = b.bound.Extend(pt)
}

func (b *pathBuilder) moveTo(x, y float64) {
	b.extend(x, y)
	b.cmds = append(b.cmds, PathCmd{Op: OpMoveTo, X: x, Y: y})
}

func (b *pathBuilder) lineTo(x, y float64) {
	b.extend(x, y)
	b.cmds = append(b.cmds, PathCmd{Op: OpLineTo, X: x, Y: y})
}

func (b *pathBuilder) close() {
	b.cmds = append(b.cmds, PathCmd{Op: OpClose})
}

// ring adds a closed subpath, skipping the duplicated closing point if present
func (b *pathBuilder) ring(r orb.Ring) {
	n := openLen(r)
	if n == 0 {
		return
	}
	b.moveTo(r[0][0], r[0][1])
	for _, pt := range r[1:n] {
		b.lineTo(pt[0], pt[1])
	}
	b.close()
}

func (b *pathBuilder) path() *RenderPath {
	return &RenderPath{cmds: b.cmds, bound: b.bound}
}

// openLen is the ring length without a repeated closing point
func openLen(r orb.Ring) int {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	return n
}

// BuildWayPath emits an open path: move-to at every break, line-to otherwise.
func BuildWayPath(points []RawPoint) *RenderPath {
	b := &pathBuilder{cmds: make([]PathCmd, 0, len(points))}
	for i, p := range points {
		if i == 0 || p.IsBreak {
			b.moveTo(p.X, p.Y)
		} else {
			b.lineTo(p.X, p.Y)
		}
	}
	return b.path()
}

// BuildPolygonPath emits the exterior as a closed path and removes each hole
// with a ring-difference, so holes are true gaps. Winding is not corrected.
//
// An exterior with fewer than 3 points or no area yields an empty path and
// ErrDegenerateGeometry. Degenerate holes are dropped and the rest of the
// polygon is still built.
func BuildPolygonPath(poly Polygon) (*RenderPath, error) {
	if openLen(poly.Exterior) < 3 {
		return &RenderPath{}, &ErrDegenerateGeometry{Kind: RecordPolygon, Reason: "exterior ring has fewer than 3 points"}
	}
	if signedArea(poly.Exterior) == 0 {
		return &RenderPath{}, &ErrDegenerateGeometry{Kind: RecordPolygon, Reason: "exterior ring has no area"}
	}

	var holes []orb.Ring
	for _, h := range poly.Interiors {
		if openLen(h) >= 3 && signedArea(h) != 0 {
			holes = append(holes, h)
		}
	}

	b := &pathBuilder{}
	if len(holes) == 0 {
		b.ring(poly.Exterior)
		return b.path(), nil
	}

	result, err := geom.UnmarshalWKT(ringWKT(poly.Exterior))
	if err != nil {
		// not a simple ring; even-odd filling of the raw rings still shows the holes
		b.ring(poly.Exterior)
		for _, h := range holes {
			b.ring(h)
		}
		return b.path(), nil
	}
	for _, h := range holes {
		hole, err := geom.UnmarshalWKT(ringWKT(h))
		if err != nil {
			continue // self-intersecting hole
		}
		diff, err := geom.Difference(result, hole)
		if err != nil {
			continue
		}
		result = diff
	}

	appendGeometry(b, result)
	return b.path(), nil
}

func appendGeometry(b *pathBuilder, g geom.Geometry) {
	if p, ok := g.AsPolygon(); ok {
		appendPolygon(b, p)
		return
	}
	if mp, ok := g.AsMultiPolygon(); ok {
		for i := 0; i < mp.NumPolygons(); i++ {
			appendPolygon(b, mp.PolygonN(i))
		}
		return
	}
	if gc, ok := g.AsGeometryCollection(); ok {
		for i := 0; i < gc.NumGeometries(); i++ {
			appendGeometry(b, gc.GeometryN(i))
		}
	}
	// lower dimensional leftovers of the difference are not drawable
}

func appendPolygon(b *pathBuilder, p geom.Polygon) {
	if p.IsEmpty() {
		return
	}
	b.ring(sequenceRing(p.ExteriorRing().Coordinates()))
	for i := 0; i < p.NumInteriorRings(); i++ {
		b.ring(sequenceRing(p.InteriorRingN(i).Coordinates()))
	}
}

func sequenceRing(seq geom.Sequence) orb.Ring {
	r := make(orb.Ring, seq.Length())
	for i := range r {
		xy := seq.GetXY(i)
		r[i] = orb.Point{xy.X, xy.Y}
	}
	return r
}

// ringWKT writes a ring as a closed WKT polygon
func ringWKT(r orb.Ring) string {
	var sb strings.Builder
	sb.WriteString("POLYGON((")
	n := openLen(r)
	for i := 0; i <= n; i++ {
		pt := r[i%n]
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(pt[0], 'g', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(pt[1], 'g', -1, 64))
	}
	sb.WriteString("))")
	return sb.String()
}
