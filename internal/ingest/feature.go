package ingest

import (
	"fmt"

	"github.com/paulmach/orb"
)

// RawPoint is a coordinate in projected space.
// IsBreak marks the start of a new disjoint sub-path within a concatenated way;
// the first point of any way is always a break.
type RawPoint struct {
	IsBreak bool    `cbor:"b"`
	X       float64 `cbor:"x"`
	Y       float64 `cbor:"y"`
}

// Way is a named, classified road built from one or more source records
type Way struct {
	Name   string     `cbor:"name"`
	Class  Class      `cbor:"class"`
	Form   Form       `cbor:"form"`
	Points []RawPoint `cbor:"points"`
}

// Parts splits the way's points at every break.
func (w Way) Parts() [][]RawPoint {
	return splitAtBreaks(w.Points)
}

func splitAtBreaks(points []RawPoint) [][]RawPoint {
	var parts [][]RawPoint
	start := 0
	for i := 1; i <= len(points); i++ {
		if i == len(points) || points[i].IsBreak {
			parts = append(parts, points[start:i])
			start = i
		}
	}
	return parts
}

// Polygon is an exterior ring plus zero or more holes.
// Rings are assumed non-self-intersecting and consistently wound by the source.
type Polygon struct {
	Exterior  orb.Ring   `cbor:"exterior"`
	Interiors []orb.Ring `cbor:"interiors"`
}

// Region is one administrative feature: every polygon of a (Multi)Polygon source feature
type Region struct {
	Name     string    `cbor:"name"`
	RegionID int       `cbor:"region_id"`
	Region   GeoRegion `cbor:"region"`
	Known    bool      `cbor:"known"` // false when RegionID is not an M49 sub-region
	Polygons []Polygon `cbor:"polygons"`
}

// Location is a settlement point
type Location struct {
	Name       string  `cbor:"name"`
	X          float64 `cbor:"x"`
	Y          float64 `cbor:"y"`
	Population int64   `cbor:"population"`
	RegionID   *int    `cbor:"region_id"`
}

// RecordKind identifies the geometry carried by a Record
type RecordKind int

const (
	RecordLine RecordKind = iota + 1
	RecordPolygon
	RecordPoint
)

func (k RecordKind) String() string {
	switch k {
	case RecordLine:
		return "line"
	case RecordPolygon:
		return "polygon"
	case RecordPoint:
		return "point"
	default:
		return fmt.Sprintf("RecordKind(%d)", int(k))
	}
}

// Record is one typed raw record produced by the Reader.
// Coordinates are still in the source reference system.
type Record struct {
	Kind   RecordKind
	Source string // file the record was read from
	Index  int    // record number within the file

	Name  string
	Class Class
	Form  Form

	Points   []RawPoint // RecordLine
	Polygons []Polygon  // RecordPolygon
	Location *Location  // RecordPoint

	RegionID *int
}

// Way converts a line record into a Way.
func (r Record) Way() Way {
	return Way{Name: r.Name, Class: r.Class, Form: r.Form, Points: r.Points}
}
