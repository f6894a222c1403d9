package ingest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Format tags a source file grammar
type Format int

const (
	FormatShapefile Format = iota + 1
	FormatGeoJSON
	FormatGeoNames
)

func (f Format) String() string {
	switch f {
	case FormatShapefile:
		return "shapefile"
	case FormatGeoJSON:
		return "geojson"
	case FormatGeoNames:
		return "geonames"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return FormatShapefile, nil
	case ".geojson", ".json":
		return FormatGeoJSON, nil
	case ".txt", ".tsv":
		return FormatGeoNames, nil
	}
	return 0, &ErrMalformedInput{Source: path, Reason: "unrecognized source file extension"}
}

// ReaderOptions names the attributes mapped into a Record
type ReaderOptions struct {
	NameField       string
	ClassField      string // empty disables class decoding
	FormField       string // empty disables form decoding
	PopulationField string
	RegionField     string

	// RequireName skips records without a name, as unnamed roads are not merged.
	RequireName bool

	// GeoNames filters. Empty Countries keeps every country; nil Bounds keeps every point.
	Countries []string
	Bounds    *orb.Bound
}

// DefaultReaderOptions returns the attribute names of the road network product.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		NameField:       "roadNumber",
		ClassField:      "class",
		FormField:       "formOfWay",
		PopulationField: "population",
		RegionField:     "region_id",
		RequireName:     true,
	}
}

// recordSource is one format's record iterator
type recordSource interface {
	next() (Record, error) // io.EOF when done
	close() error
}

// Reader lazily produces typed records from one source file
type Reader struct {
	path    string
	format  Format
	src     recordSource
	read    int
	skipped int
}

// NewReader opens path for reading. A missing or unreadable file is ErrIoFailure.
func NewReader(path string, format Format, opts ReaderOptions) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ErrIoFailure{Path: path, Op: "open", Err: err}
	}

	r := &Reader{path: path, format: format}
	var err error
	switch format {
	case FormatShapefile:
		r.src, err = openShapefile(path, opts, &r.skipped)
	case FormatGeoJSON:
		r.src, err = openGeoJSON(path, opts, &r.skipped)
	case FormatGeoNames:
		r.src, err = openGeoNames(path, opts, &r.skipped)
	default:
		err = &ErrMalformedInput{Source: path, Reason: fmt.Sprintf("unsupported format %v", format)}
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Next returns the next record, or io.EOF when the file is exhausted.
func (r *Reader) Next() (Record, error) {
	rec, err := r.src.next()
	if err != nil {
		return Record{}, err
	}
	rec.Source = r.path
	r.read++
	return rec, nil
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Records is the number of records returned so far.
func (r *Reader) Records() int { return r.read }

// Skipped is the number of source features ignored (unnamed, filtered, or unsupported shape).
func (r *Reader) Skipped() int { return r.skipped }

// Format is the grammar this reader parses.
func (r *Reader) Format() Format { return r.format }

// Close releases the underlying files.
func (r *Reader) Close() error {
	return r.src.close()
}

// shapefileSource reads .shp geometry with its .dbf attribute table
type shapefileSource struct {
	path    string
	opts    ReaderOptions
	r       *shp.Reader
	fields  map[string]int
	skipped *int
}

func openShapefile(path string, opts ReaderOptions, skipped *int) (*shapefileSource, error) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if _, err := os.Stat(base + ".dbf"); err != nil {
		return nil, &ErrIoFailure{Path: base + ".dbf", Op: "open", Err: err}
	}
	r, err := shp.Open(base + ".shp")
	if err != nil {
		return nil, &ErrIoFailure{Path: path, Op: "open", Err: err}
	}
	s := &shapefileSource{path: path, opts: opts, r: r, fields: map[string]int{}, skipped: skipped}
	for i, f := range r.Fields() {
		s.fields[f.String()] = i
	}
	return s, nil
}

func (s *shapefileSource) attr(row int, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	i, ok := s.fields[name]
	if !ok {
		return "", false
	}
	return strings.Trim(s.r.ReadAttribute(row, i), " \x00"), true
}

func (s *shapefileSource) next() (Record, error) {
	for s.r.Next() {
		row, shape := s.r.Shape()
		rec := Record{Index: row}

		switch g := shape.(type) {
		case *shp.PolyLine:
			rec.Kind, rec.Points = RecordLine, partsToPoints(g.Parts, g.Points)
		case *shp.PolyLineZ:
			rec.Kind, rec.Points = RecordLine, partsToPoints(g.Parts, g.Points)
		case *shp.Polygon:
			rec.Kind, rec.Polygons = RecordPolygon, partsToPolygons(g.Parts, g.Points)
		case *shp.PolygonZ:
			rec.Kind, rec.Polygons = RecordPolygon, partsToPolygons(g.Parts, g.Points)
		case *shp.Point:
			rec.Kind, rec.Location = RecordPoint, &Location{X: g.X, Y: g.Y}
		case *shp.PointZ:
			rec.Kind, rec.Location = RecordPoint, &Location{X: g.X, Y: g.Y}
		default:
			*s.skipped++
			continue
		}

		keep, err := s.attributes(row, &rec)
		if err != nil {
			return Record{}, err
		}
		if !keep {
			*s.skipped++
			continue
		}
		return rec, nil
	}
	if err := s.r.Err(); err != nil {
		return Record{}, &ErrMalformedInput{Source: s.path, Reason: "shape table", Err: err}
	}
	return Record{}, io.EOF
}

func (s *shapefileSource) attributes(row int, rec *Record) (bool, error) {
	name, _ := s.attr(row, s.opts.NameField)
	if name == "" && s.opts.RequireName {
		return false, nil
	}
	rec.Name = name

	src := fmt.Sprintf("%s record %d", s.path, row)
	if v, ok := s.attr(row, s.opts.ClassField); ok {
		c, err := ParseClass(v)
		if err != nil {
			return false, withSource(err, src)
		}
		rec.Class = c
	} else {
		rec.Class = ClassUnknown
	}
	if v, ok := s.attr(row, s.opts.FormField); ok {
		f, err := ParseForm(v)
		if err != nil {
			return false, withSource(err, src)
		}
		rec.Form = f
	}
	if v, ok := s.attr(row, s.opts.RegionField); ok && v != "" {
		id, err := parseInt(v)
		if err != nil {
			return false, &ErrMalformedInput{Source: src, Reason: "region id", Err: err}
		}
		n := int(id)
		rec.RegionID = &n
	}
	if rec.Location != nil {
		rec.Location.Name = name
		rec.Location.RegionID = rec.RegionID
		if v, ok := s.attr(row, s.opts.PopulationField); ok && v != "" {
			pop, err := parseInt(v)
			if err != nil {
				return false, &ErrMalformedInput{Source: src, Reason: "population", Err: err}
			}
			rec.Location.Population = pop
		}
	}
	return true, nil
}

func (s *shapefileSource) close() error {
	return s.r.Close()
}

// partsToPoints flattens a multi-part line, marking the first point of every part as a break
func partsToPoints(parts []int32, points []shp.Point) []RawPoint {
	out := make([]RawPoint, 0, len(points))
	for i, p := range points {
		out = append(out, RawPoint{IsBreak: isPartStart(parts, i), X: p.X, Y: p.Y})
	}
	return out
}

func isPartStart(parts []int32, i int) bool {
	if i == 0 {
		return true
	}
	for _, p := range parts {
		if int(p) == i {
			return true
		}
	}
	return false
}

func splitParts(parts []int32, points []shp.Point) [][]shp.Point {
	out := make([][]shp.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			continue
		}
		out = append(out, points[start:end])
	}
	return out
}

// partsToPolygons groups shapefile rings: a clockwise ring starts a polygon,
// counter-clockwise rings are holes of the polygon before them.
func partsToPolygons(parts []int32, points []shp.Point) []Polygon {
	var out []Polygon
	for _, part := range splitParts(parts, points) {
		ring := make(orb.Ring, len(part))
		for i, p := range part {
			ring[i] = orb.Point{p.X, p.Y}
		}
		if signedArea(ring) <= 0 || len(out) == 0 {
			out = append(out, Polygon{Exterior: ring})
			continue
		}
		last := &out[len(out)-1]
		last.Interiors = append(last.Interiors, ring)
	}
	return out
}

// signedArea is positive for counter-clockwise rings
func signedArea(r orb.Ring) float64 {
	var a float64
	for i := range r {
		j := (i + 1) % len(r)
		a += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return a / 2
}

// geojsonSource walks an in-memory FeatureCollection
type geojsonSource struct {
	path    string
	opts    ReaderOptions
	fc      *geojson.FeatureCollection
	pos     int
	skipped *int
}

func openGeoJSON(path string, opts ReaderOptions, skipped *int) (*geojsonSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrIoFailure{Path: path, Op: "read", Err: err}
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &ErrMalformedInput{Source: path, Reason: "feature collection", Err: err}
	}
	return &geojsonSource{path: path, opts: opts, fc: fc, skipped: skipped}, nil
}

func (s *geojsonSource) next() (Record, error) {
	for s.pos < len(s.fc.Features) {
		i := s.pos
		f := s.fc.Features[i]
		s.pos++
		if f == nil || f.Geometry == nil {
			*s.skipped++
			continue
		}

		src := fmt.Sprintf("%s feature %d", s.path, i)
		rec := Record{Index: i}
		switch g := f.Geometry.(type) {
		case orb.LineString:
			rec.Kind, rec.Points = RecordLine, lineToPoints(nil, g)
		case orb.MultiLineString:
			rec.Kind = RecordLine
			for _, ls := range g {
				rec.Points = lineToPoints(rec.Points, ls)
			}
		case orb.Polygon:
			rec.Kind, rec.Polygons = RecordPolygon, []Polygon{fromOrbPolygon(g)}
		case orb.MultiPolygon:
			rec.Kind = RecordPolygon
			for _, p := range g {
				rec.Polygons = append(rec.Polygons, fromOrbPolygon(p))
			}
		case orb.Point:
			rec.Kind, rec.Location = RecordPoint, &Location{X: g[0], Y: g[1]}
		default:
			return Record{}, &ErrMalformedInput{Source: src, Reason: fmt.Sprintf("unsupported geometry %s", f.Geometry.GeoJSONType())}
		}

		keep, err := s.properties(f.Properties, &rec, src)
		if err != nil {
			return Record{}, err
		}
		if !keep {
			*s.skipped++
			continue
		}
		return rec, nil
	}
	return Record{}, io.EOF
}

func (s *geojsonSource) properties(props geojson.Properties, rec *Record, src string) (bool, error) {
	name, _, err := stringProp(props, s.opts.NameField)
	if err != nil {
		return false, withSource(err, src)
	}
	if name == "" && s.opts.RequireName {
		return false, nil
	}
	rec.Name = name

	rec.Class = ClassUnknown
	if v, ok, err := stringProp(props, s.opts.ClassField); err != nil {
		return false, withSource(err, src)
	} else if ok {
		if rec.Class, err = ParseClass(v); err != nil {
			return false, withSource(err, src)
		}
	}
	if v, ok, err := stringProp(props, s.opts.FormField); err != nil {
		return false, withSource(err, src)
	} else if ok {
		if rec.Form, err = ParseForm(v); err != nil {
			return false, withSource(err, src)
		}
	}
	if v, ok, err := intProp(props, s.opts.RegionField); err != nil {
		return false, withSource(err, src)
	} else if ok {
		n := int(v)
		rec.RegionID = &n
	}
	if rec.Location != nil {
		rec.Location.Name = name
		rec.Location.RegionID = rec.RegionID
		pop, _, err := intProp(props, s.opts.PopulationField)
		if err != nil {
			return false, withSource(err, src)
		}
		rec.Location.Population = pop
	}
	return true, nil
}

func (s *geojsonSource) close() error { return nil }

func lineToPoints(dst []RawPoint, ls orb.LineString) []RawPoint {
	for i, p := range ls {
		dst = append(dst, RawPoint{IsBreak: i == 0, X: p[0], Y: p[1]})
	}
	return dst
}

func fromOrbPolygon(p orb.Polygon) Polygon {
	if len(p) == 0 {
		return Polygon{}
	}
	out := Polygon{Exterior: p[0]}
	if len(p) > 1 {
		out.Interiors = append([]orb.Ring(nil), p[1:]...)
	}
	return out
}

// stringProp reads an optional string property. Present but not a string is MalformedInput.
func stringProp(props geojson.Properties, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	v, ok := props[key]
	if !ok || v == nil {
		return "", false, nil
	}
	switch t := v.(type) {
	case string:
		return t, true, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true, nil
	}
	return "", false, &ErrMalformedInput{Reason: fmt.Sprintf("property %q is %T, want string", key, v)}
}

// intProp reads an optional integral property given as a number or numeric string.
func intProp(props geojson.Properties, key string) (int64, bool, error) {
	if key == "" {
		return 0, false, nil
	}
	v, ok := props[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch t := v.(type) {
	case float64:
		n, err := integral(t)
		if err != nil {
			return 0, false, &ErrMalformedInput{Reason: fmt.Sprintf("property %q", key), Err: err}
		}
		return n, true, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false, nil
		}
		n, err := parseInt(t)
		if err != nil {
			return 0, false, &ErrMalformedInput{Reason: fmt.Sprintf("property %q", key), Err: err}
		}
		return n, true, nil
	}
	return 0, false, &ErrMalformedInput{Reason: fmt.Sprintf("property %q is %T, want number", key, v)}
}

// parseInt accepts integers and integral decimals such as "25000.000"
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return integral(f)
}

// integral converts f to an integer, rejecting fractions and values that
// do not fit in an int64.
func integral(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%v is out of range", f)
	}
	return int64(f), nil
}

func withSource(err error, src string) error {
	var m *ErrMalformedInput
	if errors.As(err, &m) && m.Source == "" {
		m.Source = src
	}
	return err
}
