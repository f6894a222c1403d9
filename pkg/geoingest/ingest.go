package geoingest

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geoingest/internal/ingest"
	"github.com/beetlebugorg/geoingest/internal/logger"
	"github.com/beetlebugorg/geoingest/internal/metrics"
)

// IngestWays reads road linework from shapefiles or GeoJSON files, merges
// records that share a road name, rebuilds each road's topology, simplifies
// it and groups the result by class.
//
// Records are read in path order, so the output is deterministic for a given
// list of paths. Unrecognized class or form values abort the run with
// ErrMalformedInput.
//
// Example:
//
//	paths, _ := geoingest.DiscoverSources("/data/oproad", ".shp")
//	ways, err := geoingest.IngestWays(paths, geoingest.DefaultIngestOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d motorways\n", len(ways[geoingest.ClassMotorway]))
func IngestWays(paths []string, opts IngestOptions) (Ways, error) {
	start := time.Now()
	defer observe("ways", start)

	proj, err := ingest.NewProjector(opts.SourceCRS, opts.TargetCRS)
	if err != nil {
		return nil, err
	}

	files, errs := readFiles(paths, opts.Reader, opts.Load)
	if err := firstFatal(errs, opts.Load); err != nil {
		return nil, err
	}

	var raw []ingest.Way
	for _, f := range files {
		for _, rec := range f.records {
			if rec.Kind != ingest.RecordLine {
				continue
			}
			w := rec.Way()
			if w.Points, err = proj.Points(w.Points); err != nil {
				return nil, withRecord(err, rec)
			}
			raw = append(raw, w)
		}
	}

	merged := ingest.MergeWays(raw)
	metrics.WaysMerged.Add(float64(len(merged)))

	out := make(Ways)
	var before, after int
	for _, w := range merged {
		before += len(w.Points)
		s, err := ingest.SimplifyWay(w, opts.Tolerance, opts.Precision)
		if err != nil {
			return nil, fmt.Errorf("way %q: %w", w.Name, err)
		}
		if err := ingest.ValidateWay(s); err != nil {
			if skipErr := degenerate(err, opts); skipErr != nil {
				return nil, skipErr
			}
			continue
		}
		after += len(s.Points)
		out[s.Class] = append(out[s.Class], s)
	}
	metrics.PointsBeforeSimplify.Add(float64(before))
	metrics.PointsAfterSimplify.Add(float64(after))

	logger.L().Info("ingest_ways_ok", "files", len(files), "records", len(raw),
		"ways", len(merged), "points_before", before, "points_after", after,
		"duration", time.Since(start))
	return out, nil
}

// IngestRegions reads administrative polygons from one source file. Each
// source feature becomes one Region holding all of its polygons.
func IngestRegions(path string, opts IngestOptions) ([]Region, error) {
	start := time.Now()
	defer observe("regions", start)

	proj, err := ingest.NewProjector(opts.SourceCRS, opts.TargetCRS)
	if err != nil {
		return nil, err
	}
	recs, err := readFile(path, opts.placeReader())
	if err != nil {
		return nil, err
	}

	var out []Region
	for _, rec := range recs {
		if rec.Kind != ingest.RecordPolygon {
			continue
		}
		r := Region{Name: rec.Name}
		if rec.RegionID != nil {
			r.RegionID = *rec.RegionID
			r.Region, r.Known = ingest.RegionFromID(r.RegionID)
		}
		for _, p := range rec.Polygons {
			pp, err := proj.Polygon(p)
			if err != nil {
				return nil, withRecord(err, rec)
			}
			r.Polygons = append(r.Polygons, pp)
		}
		r, err = ingest.ValidateRegion(r)
		if err != nil {
			if skipErr := degenerate(err, opts); skipErr != nil {
				return nil, skipErr
			}
			continue
		}
		if len(r.Polygons) < len(rec.Polygons) {
			metrics.DegenerateDropped.WithLabelValues(ingest.RecordPolygon.String()).
				Add(float64(len(rec.Polygons) - len(r.Polygons)))
		}
		out = append(out, r)
	}

	logger.L().Info("ingest_regions_ok", "path", path, "regions", len(out), "duration", time.Since(start))
	return out, nil
}

// IngestBoundaries reads land and water boundary linework. Each source
// feature is kept as its own line with breaks between parts; names are not
// required and lines are never merged.
func IngestBoundaries(paths []string, opts IngestOptions) ([][]RawPoint, error) {
	start := time.Now()
	defer observe("boundaries", start)

	proj, err := ingest.NewProjector(opts.SourceCRS, opts.TargetCRS)
	if err != nil {
		return nil, err
	}
	files, errs := readFiles(paths, opts.placeReader(), opts.Load)
	if err := firstFatal(errs, opts.Load); err != nil {
		return nil, err
	}

	var out [][]RawPoint
	var before, after int
	for _, f := range files {
		for _, rec := range f.records {
			var points []RawPoint
			switch rec.Kind {
			case ingest.RecordLine:
				points = rec.Points
			case ingest.RecordPolygon:
				points = polygonOutline(rec.Polygons)
			default:
				continue
			}
			if points, err = proj.Points(points); err != nil {
				return nil, withRecord(err, rec)
			}
			before += len(points)
			s, err := ingest.SimplifyWay(Way{Points: points}, opts.Tolerance, opts.Precision)
			if err != nil {
				return nil, withRecord(err, rec)
			}
			if err := ingest.ValidateWay(s); err != nil {
				if skipErr := degenerate(err, opts); skipErr != nil {
					return nil, skipErr
				}
				continue
			}
			after += len(s.Points)
			out = append(out, s.Points)
		}
	}
	metrics.PointsBeforeSimplify.Add(float64(before))
	metrics.PointsAfterSimplify.Add(float64(after))

	logger.L().Info("ingest_boundaries_ok", "files", len(files), "lines", len(out), "duration", time.Since(start))
	return out, nil
}

// IngestSettlements reads settlement points, projects them and orders them
// by descending population. De-duplication is not applied here; it runs
// when a dataset is loaded so the radius can change without re-ingesting.
func IngestSettlements(path string, format Format, opts IngestOptions) ([]Location, error) {
	start := time.Now()
	defer observe("settlements", start)

	// gazetteer rows are always WGS 84 longitude and latitude
	source := opts.SourceCRS
	if format == FormatGeoNames {
		source = CRSWGS84
	}
	proj, err := ingest.NewProjector(source, opts.TargetCRS)
	if err != nil {
		return nil, err
	}
	r, err := ingest.NewReader(path, format, opts.placeReader())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out []Location
	for {
		rec, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if rec.Kind != ingest.RecordPoint || rec.Location == nil {
			continue
		}
		loc := *rec.Location
		if loc.X, loc.Y, err = proj.Project(loc.X, loc.Y); err != nil {
			return nil, withRecord(err, rec)
		}
		out = append(out, loc)
	}
	metrics.RecordsRead.WithLabelValues(format.String()).Add(float64(r.Records()))
	metrics.RecordsSkipped.WithLabelValues(format.String()).Add(float64(r.Skipped()))

	ingest.SortByImportance(out)
	logger.L().Info("ingest_settlements_ok", "path", path, "locations", len(out),
		"skipped", r.Skipped(), "duration", time.Since(start))
	return out, nil
}

// Sources names the inputs of a full ingestion run. Empty fields are skipped.
type Sources struct {
	Roads       []string
	Regions     string
	Boundaries  []string
	Settlements string
	// SettlementFormat defaults to the format implied by the file extension.
	SettlementFormat Format
}

// IngestDataset runs every configured stage and returns the combined dataset.
func IngestDataset(src Sources, opts IngestOptions) (*Dataset, error) {
	ds := &Dataset{}
	var err error
	if len(src.Roads) > 0 {
		if ds.Ways, err = IngestWays(src.Roads, opts); err != nil {
			return nil, fmt.Errorf("ingest ways: %w", err)
		}
	}
	if src.Regions != "" {
		if ds.Regions, err = IngestRegions(src.Regions, opts); err != nil {
			return nil, fmt.Errorf("ingest regions: %w", err)
		}
	}
	if len(src.Boundaries) > 0 {
		if ds.Boundaries, err = IngestBoundaries(src.Boundaries, opts); err != nil {
			return nil, fmt.Errorf("ingest boundaries: %w", err)
		}
	}
	if src.Settlements != "" {
		format := src.SettlementFormat
		if format == 0 {
			if format, err = ingest.FormatFromPath(src.Settlements); err != nil {
				return nil, fmt.Errorf("ingest settlements: %w", err)
			}
		}
		if ds.Settlements, err = IngestSettlements(src.Settlements, format, opts); err != nil {
			return nil, fmt.Errorf("ingest settlements: %w", err)
		}
	}
	return ds, nil
}

// polygonOutline turns every ring into a closed line starting at a break.
func polygonOutline(polys []Polygon) []RawPoint {
	var out []RawPoint
	add := func(r orb.Ring) {
		for i, p := range r {
			out = append(out, RawPoint{IsBreak: i == 0, X: p[0], Y: p[1]})
		}
		if n := len(r); n > 1 && r[0] != r[n-1] {
			out = append(out, RawPoint{X: r[0][0], Y: r[0][1]})
		}
	}
	for _, p := range polys {
		add(p.Exterior)
		for _, h := range p.Interiors {
			add(h)
		}
	}
	return out
}

// degenerate returns nil when err may be skipped under opts.
func degenerate(err error, opts IngestOptions) error {
	var dg *ingest.ErrDegenerateGeometry
	if !errors.As(err, &dg) || !opts.SkipDegenerate {
		return err
	}
	metrics.DegenerateDropped.WithLabelValues(dg.Kind.String()).Inc()
	logger.L().Debug("degenerate_dropped", "err", err)
	return nil
}

// firstFatal returns the error that should abort a multi-file read.
func firstFatal(errs []error, opts LoadOptions) error {
	if len(errs) == 0 {
		return nil
	}
	if !opts.SkipErrors {
		return errs[0]
	}
	for _, err := range errs {
		logger.L().Warn("source_skipped", "err", err)
	}
	return nil
}

func withRecord(err error, rec ingest.Record) error {
	return fmt.Errorf("%s record %d: %w", rec.Source, rec.Index, err)
}

func observe(stage string, start time.Time) {
	metrics.IngestDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
