package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/wroge/wgs84"
)

// Scale divides projected units (metres) into rendering units.
// Every cache file records the Scale it was written with.
const Scale = 1000.0

// CRS names a coordinate reference system by EPSG code
type CRS string

const (
	CRSWGS84       CRS = "EPSG:4326"  // lon/lat degrees
	CRSWebMercator CRS = "EPSG:3857"  // spherical pseudo-mercator metres
	CRSBritishGrid CRS = "EPSG:27700" // OSGB36 British National Grid metres
)

// Code is the numeric EPSG code, or 0 when c is not of the form EPSG:nnnn.
func (c CRS) Code() int {
	n, err := strconv.Atoi(strings.TrimPrefix(string(c), "EPSG:"))
	if err != nil {
		return 0
	}
	return n
}

// ParseCRS accepts "EPSG:nnnn" or a bare code.
func ParseCRS(s string) (CRS, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "EPSG:") {
		s = "EPSG:" + s
	}
	switch CRS(s) {
	case CRSWGS84, CRSWebMercator, CRSBritishGrid:
		return CRS(s), nil
	case "EPSG:900913":
		return CRSWebMercator, nil
	}
	return "", &ErrMalformedInput{Reason: fmt.Sprintf("unsupported coordinate reference system %q", s)}
}

// Projector converts source coordinates into rendering units for one CRS pair
type Projector struct {
	Source CRS
	Target CRS
	proj   orb.Projection // nil means identity
}

// NewProjector returns a Projector for the pair, or MalformedInput when the pair is unsupported.
func NewProjector(source, target CRS) (*Projector, error) {
	p := &Projector{Source: source, Target: target}
	if source == target {
		return p, nil
	}
	switch {
	case source == CRSWGS84 && target == CRSWebMercator:
		p.proj = project.WGS84.ToMercator
	case source == CRSWebMercator && target == CRSWGS84:
		p.proj = project.Mercator.ToWGS84
	case source == CRSWGS84 && target == CRSBritishGrid:
		grid, err := geodetic(CRSWGS84, CRSBritishGrid)
		if err != nil {
			return nil, err
		}
		p.proj = grid
	case source == CRSWebMercator && target == CRSBritishGrid:
		grid, err := geodetic(CRSWGS84, CRSBritishGrid)
		if err != nil {
			return nil, err
		}
		p.proj = func(pt orb.Point) orb.Point {
			return grid(project.Mercator.ToWGS84(pt))
		}
	default:
		return nil, &ErrMalformedInput{Reason: fmt.Sprintf("no projection from %s to %s", source, target)}
	}
	return p, nil
}

// Project converts one coordinate and applies Scale.
func (p *Projector) Project(x, y float64) (float64, float64, error) {
	if !finite(x) || !finite(y) {
		return 0, 0, &ErrMalformedInput{Reason: fmt.Sprintf("non-finite coordinate (%v, %v)", x, y)}
	}
	pt := orb.Point{x, y}
	if p.proj != nil {
		pt = p.proj(pt)
	}
	return pt[0] / Scale, pt[1] / Scale, nil
}

// Project is the pure-function form of Projector.Project.
func Project(x, y float64, source, target CRS) (float64, float64, error) {
	p, err := NewProjector(source, target)
	if err != nil {
		return 0, 0, err
	}
	return p.Project(x, y)
}

// Points projects a point sequence, keeping break markers.
func (p *Projector) Points(in []RawPoint) ([]RawPoint, error) {
	out := make([]RawPoint, len(in))
	for i, rp := range in {
		x, y, err := p.Project(rp.X, rp.Y)
		if err != nil {
			return nil, err
		}
		out[i] = RawPoint{IsBreak: rp.IsBreak, X: x, Y: y}
	}
	return out, nil
}

// Ring projects a polygon ring.
func (p *Projector) Ring(in orb.Ring) (orb.Ring, error) {
	out := make(orb.Ring, len(in))
	for i, pt := range in {
		x, y, err := p.Project(pt[0], pt[1])
		if err != nil {
			return nil, err
		}
		out[i] = orb.Point{x, y}
	}
	return out, nil
}

// Polygon projects every ring of a polygon.
func (p *Projector) Polygon(in Polygon) (Polygon, error) {
	ext, err := p.Ring(in.Exterior)
	if err != nil {
		return Polygon{}, err
	}
	out := Polygon{Exterior: ext}
	for _, hole := range in.Interiors {
		r, err := p.Ring(hole)
		if err != nil {
			return Polygon{}, err
		}
		out.Interiors = append(out.Interiors, r)
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// geodetic wraps an EPSG transform as an orb projection. Heights are ignored.
func geodetic(from, to CRS) (orb.Projection, error) {
	fn, err := wgs84.EPSG().SafeTransform(from.Code(), to.Code())
	if err != nil {
		return nil, &ErrMalformedInput{Reason: fmt.Sprintf("no projection from %s to %s", from, to), Err: err}
	}
	return func(p orb.Point) orb.Point {
		x, y, _ := fn(p[0], p[1], 0)
		return orb.Point{x, y}
	}, nil
}
