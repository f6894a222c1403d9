package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// GeoNames dump layout: 19 tab-separated columns
const (
	gnColumns      = 19
	gnName         = 1
	gnLatitude     = 4
	gnLongitude    = 5
	gnFeatureClass = 6
	gnFeatureCode  = 7
	gnCountry      = 8
	gnPopulation   = 14
)

// Populated place feature codes kept from the gazetteer
var settlementCodes = map[string]bool{
	"PPLA":  true,
	"PPLA2": true,
	"PPLA3": true,
	"PPLA4": true,
	"PPLL":  true,
	"PPLC":  true,
	"PPLS":  true,
	"PPL":   true,
}

// geonamesSource reads settlements from a GeoNames "allCountries.txt" style dump.
// Coordinates are returned as lon/lat.
type geonamesSource struct {
	path      string
	f         *os.File
	sc        *bufio.Scanner
	line      int
	countries map[string]bool
	bounds    *orb.Bound
	skipped   *int
}

func openGeoNames(path string, opts ReaderOptions, skipped *int) (*geonamesSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ErrIoFailure{Path: path, Op: "open", Err: err}
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024) // alternate names can be long

	s := &geonamesSource{path: path, f: f, sc: sc, bounds: opts.Bounds, skipped: skipped}
	if len(opts.Countries) > 0 {
		s.countries = make(map[string]bool, len(opts.Countries))
		for _, c := range opts.Countries {
			s.countries[strings.ToUpper(c)] = true
		}
	}
	return s, nil
}

func (s *geonamesSource) next() (Record, error) {
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		row := strings.Split(text, "\t")
		src := fmt.Sprintf("%s line %d", s.path, s.line)
		if len(row) != gnColumns {
			return Record{}, &ErrMalformedInput{Source: src,
				Reason: fmt.Sprintf("expected %d columns, got %d", gnColumns, len(row))}
		}

		if row[gnFeatureClass] != "P" || !settlementCodes[row[gnFeatureCode]] {
			*s.skipped++
			continue
		}
		if s.countries != nil && !s.countries[row[gnCountry]] {
			*s.skipped++
			continue
		}

		lat, err := strconv.ParseFloat(row[gnLatitude], 64)
		if err != nil {
			return Record{}, &ErrMalformedInput{Source: src, Reason: "latitude", Err: err}
		}
		lon, err := strconv.ParseFloat(row[gnLongitude], 64)
		if err != nil {
			return Record{}, &ErrMalformedInput{Source: src, Reason: "longitude", Err: err}
		}
		if s.bounds != nil && !s.bounds.Contains(orb.Point{lon, lat}) {
			*s.skipped++
			continue
		}

		var pop int64
		if v := strings.TrimSpace(row[gnPopulation]); v != "" {
			if pop, err = strconv.ParseInt(v, 10, 64); err != nil {
				return Record{}, &ErrMalformedInput{Source: src, Reason: "population", Err: err}
			}
		}

		return Record{
			Kind:     RecordPoint,
			Index:    s.line,
			Name:     row[gnName],
			Location: &Location{Name: row[gnName], X: lon, Y: lat, Population: pop},
		}, nil
	}
	if err := s.sc.Err(); err != nil {
		return Record{}, &ErrIoFailure{Path: s.path, Op: "read", Err: err}
	}
	return Record{}, io.EOF
}

func (s *geonamesSource) close() error {
	return s.f.Close()
}
