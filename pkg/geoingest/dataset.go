package geoingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geoingest/internal/cache"
	"github.com/beetlebugorg/geoingest/internal/ingest"
	"github.com/beetlebugorg/geoingest/internal/logger"
	"github.com/beetlebugorg/geoingest/internal/metrics"
)

// Dataset is the reduced, renderable form of one ingestion run.
//
// A Dataset is persisted as one cache file per layer in a directory. Layers
// that were not ingested are stored empty so a reload sees the same shape.
//
// Example:
//
//	ds, err := geoingest.IngestDataset(src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ds.Save("/var/cache/geoingest"); err != nil {
//	    log.Fatal(err)
//	}
type Dataset struct {
	Ways        Ways
	Regions     []Region
	Boundaries  [][]RawPoint
	Settlements []Location
}

// layer ties a cache kind to the Dataset field it stores.
type layer struct {
	kind cache.Kind
	ptr  any
}

func (d *Dataset) layers() []layer {
	return []layer{
		{cache.KindWays, &d.Ways},
		{cache.KindRegions, &d.Regions},
		{cache.KindBoundaries, &d.Boundaries},
		{cache.KindSettlements, &d.Settlements},
	}
}

// Save writes every layer to dir, creating it if needed. Each file is
// replaced atomically.
func (d *Dataset) Save(dir string) error {
	start := time.Now()
	for _, l := range d.layers() {
		path := filepath.Join(dir, l.kind.FileName())
		if err := cache.Write(path, l.kind, l.ptr); err != nil {
			metrics.CacheFailures.WithLabelValues(string(l.kind), "write").Inc()
			logger.L().Error("cache_write_error", "path", path, "err", err)
			return fmt.Errorf("save %s: %w", l.kind, err)
		}
		metrics.CacheWrites.WithLabelValues(string(l.kind)).Inc()
	}
	logger.L().Info("dataset_saved", "dir", dir, "duration", time.Since(start))
	return nil
}

// LoadDataset reads the layers saved in dir. Save always writes every layer,
// so a missing layer file means the cache is incomplete and is ErrIoFailure.
// A layer written by an incompatible version is ErrSchemaMismatch; the
// remedy is to ingest again from source.
//
// Settlements are de-duplicated here with opts.MinRadius and
// opts.MinPopulation, so the cached layer keeps every candidate.
func LoadDataset(dir string, opts IngestOptions) (*Dataset, error) {
	start := time.Now()
	d := &Dataset{}
	for _, l := range d.layers() {
		path := filepath.Join(dir, l.kind.FileName())
		err := cache.Read(path, l.kind, l.ptr)
		if errors.Is(err, fs.ErrNotExist) {
			metrics.CacheFailures.WithLabelValues(string(l.kind), "missing").Inc()
			logger.L().Error("cache_layer_missing", "path", path)
			return nil, fmt.Errorf("load %s: %w", l.kind, &ingest.ErrIoFailure{Path: path, Op: "load", Err: fs.ErrNotExist})
		}
		if err != nil {
			op := "read"
			if cache.IsStale(err) {
				op = "decode"
			}
			metrics.CacheFailures.WithLabelValues(string(l.kind), op).Inc()
			logger.L().Error("cache_read_error", "path", path, "err", err)
			return nil, fmt.Errorf("load %s: %w", l.kind, err)
		}
		metrics.CacheReads.WithLabelValues(string(l.kind)).Inc()
	}

	raw := len(d.Settlements)
	d.Settlements = ingest.Dedupe(d.Settlements, opts.MinRadius, opts.MinPopulation)
	metrics.LocationsAccepted.Add(float64(len(d.Settlements)))
	metrics.LocationsRejected.Add(float64(raw - len(d.Settlements)))

	logger.L().Info("dataset_loaded", "dir", dir,
		"settlements", len(d.Settlements), "candidates", raw, "duration", time.Since(start))
	return d, nil
}

// WayPaths builds one render path per way, grouped by class.
func (d *Dataset) WayPaths() map[Class][]*RenderPath {
	out := make(map[Class][]*RenderPath, len(d.Ways))
	for class, ways := range d.Ways {
		paths := make([]*RenderPath, 0, len(ways))
		for _, w := range ways {
			paths = append(paths, ingest.BuildWayPath(w.Points))
		}
		out[class] = paths
	}
	return out
}

// RegionPaths builds the filled paths of every region. The result is
// parallel to d.Regions; degenerate polygons are left out.
func (d *Dataset) RegionPaths() [][]*RenderPath {
	out := make([][]*RenderPath, len(d.Regions))
	for i, r := range d.Regions {
		for _, poly := range r.Polygons {
			p, err := ingest.BuildPolygonPath(poly)
			if err != nil {
				logger.L().Debug("region_polygon_skipped", "region", r.Name, "err", err)
				continue
			}
			out[i] = append(out[i], p)
		}
	}
	return out
}

// BoundaryPaths builds one stroked path per boundary line.
func (d *Dataset) BoundaryPaths() []*RenderPath {
	out := make([]*RenderPath, 0, len(d.Boundaries))
	for _, b := range d.Boundaries {
		out = append(out, ingest.BuildWayPath(b))
	}
	return out
}

// Stats summarizes a dataset.
type Stats struct {
	Ways        map[Class]int
	WayPoints   int
	Regions     int
	Polygons    int
	Boundaries  int
	Settlements int
	Bound       orb.Bound
	empty       bool
}

// Empty reports whether the dataset had no coordinates.
func (s Stats) Empty() bool { return s.empty }

// Stats counts the features of every layer and their combined bounds.
func (d *Dataset) Stats() Stats {
	s := Stats{Ways: make(map[Class]int), empty: true}
	extend := func(x, y float64) {
		p := orb.Point{x, y}
		if s.empty {
			s.Bound = p.Bound()
			s.empty = false
			return
		}
		s.Bound = s.Bound.Extend(p)
	}

	for class, ways := range d.Ways {
		s.Ways[class] = len(ways)
		for _, w := range ways {
			s.WayPoints += len(w.Points)
			for _, p := range w.Points {
				extend(p.X, p.Y)
			}
		}
	}
	s.Regions = len(d.Regions)
	for _, r := range d.Regions {
		s.Polygons += len(r.Polygons)
		for _, poly := range r.Polygons {
			for _, p := range poly.Exterior {
				extend(p[0], p[1])
			}
		}
	}
	s.Boundaries = len(d.Boundaries)
	for _, b := range d.Boundaries {
		for _, p := range b {
			extend(p.X, p.Y)
		}
	}
	s.Settlements = len(d.Settlements)
	for _, l := range d.Settlements {
		extend(l.X, l.Y)
	}
	return s
}
