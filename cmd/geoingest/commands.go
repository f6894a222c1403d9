package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geoingest/internal/config"
	"github.com/beetlebugorg/geoingest/internal/render"
	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

var errUsage = errors.New("usage")

// datasets holds caches loaded by stats, render and query so repeated
// commands in one process read each directory once.
var datasets = geoingest.NewDatasetCache(512 << 20)

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// ingestOptions applies configured values over the library defaults.
func ingestOptions(cfg config.Config) (geoingest.IngestOptions, error) {
	opts := geoingest.DefaultIngestOptions()
	if cfg.SourceCRS != "" {
		crs, err := geoingest.ParseCRS(cfg.SourceCRS)
		if err != nil {
			return opts, err
		}
		opts.SourceCRS = crs
	}
	if cfg.TargetCRS != "" {
		crs, err := geoingest.ParseCRS(cfg.TargetCRS)
		if err != nil {
			return opts, err
		}
		opts.TargetCRS = crs
	}
	if cfg.Tolerance > 0 {
		opts.Tolerance = cfg.Tolerance
	}
	if cfg.Precision > 0 {
		opts.Precision = cfg.Precision
	}
	if cfg.MinRadius > 0 {
		opts.MinRadius = cfg.MinRadius
	}
	if cfg.MinPopulation > 0 {
		opts.MinPopulation = cfg.MinPopulation
	}
	if len(cfg.Countries) > 0 {
		opts = opts.WithCountries(cfg.Countries...)
	}
	return opts, nil
}

// resolve finds a relative source path under dataDir when it does not
// exist relative to the working directory.
func resolve(dataDir, p string) string {
	if p == "" || dataDir == "" || filepath.IsAbs(p) {
		return p
	}
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return filepath.Join(dataDir, p)
}

// sourcePaths expands a comma separated list of files and directories.
func sourcePaths(dataDir, arg string, exts ...string) ([]string, error) {
	var out []string
	for _, p := range strings.Split(arg, ",") {
		p = resolve(dataDir, strings.TrimSpace(p))
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", geoingest.ErrIoFailure, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		found, err := geoingest.DiscoverSources(p, exts...)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func runIngest(cfg config.Config, args []string, stdout io.Writer) error {
	opts, err := ingestOptions(cfg)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	roads := fs.String("roads", "", "road shapefiles or GeoJSON, files or directories, comma separated")
	regions := fs.String("regions", "", "region polygon file")
	boundaries := fs.String("boundaries", "", "land and water boundary files or directories, comma separated")
	settlements := fs.String("settlements", "", "settlement points: shapefile, GeoJSON or GeoNames dump")
	cacheDir := fs.String("cache", cfg.CacheDir, "dataset cache directory")
	sourceCRS := fs.String("source-crs", string(opts.SourceCRS), "reference system of the sources")
	targetCRS := fs.String("target-crs", string(opts.TargetCRS), "reference system of the dataset")
	fs.Float64Var(&opts.Tolerance, "tolerance", opts.Tolerance, "simplification tolerance in rendering units, 0 disables")
	fs.Float64Var(&opts.Precision, "precision", opts.Precision, "endpoint matching grid in rendering units, 0 is exact")
	fs.IntVar(&opts.Load.Workers, "workers", opts.Load.Workers, "parallel source readers")
	fs.BoolVar(&opts.Load.SkipErrors, "skip-errors", false, "continue past unreadable source files")
	keepDegenerate := fs.Bool("strict", false, "fail on degenerate geometry instead of dropping it")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError("%v", err)
	}

	if opts.SourceCRS, err = geoingest.ParseCRS(*sourceCRS); err != nil {
		return err
	}
	if opts.TargetCRS, err = geoingest.ParseCRS(*targetCRS); err != nil {
		return err
	}
	opts.SkipDegenerate = !*keepDegenerate
	if opts.Load.SkipErrors {
		opts.Load.ErrorLog = os.Stderr
	}

	src := geoingest.Sources{
		Regions:     resolve(cfg.DataDir, *regions),
		Settlements: resolve(cfg.DataDir, *settlements),
	}
	if *roads != "" {
		if src.Roads, err = sourcePaths(cfg.DataDir, *roads, ".shp", ".geojson", ".json"); err != nil {
			return err
		}
	}
	if *boundaries != "" {
		if src.Boundaries, err = sourcePaths(cfg.DataDir, *boundaries, ".shp", ".geojson", ".json"); err != nil {
			return err
		}
	}
	if len(src.Roads) == 0 && src.Regions == "" && len(src.Boundaries) == 0 && src.Settlements == "" {
		return usageError("no sources given")
	}

	ds, err := geoingest.IngestDataset(src, opts)
	if err != nil {
		return err
	}
	if err := ds.Save(*cacheDir); err != nil {
		return err
	}
	datasets.Invalidate(*cacheDir)
	fmt.Fprintf(stdout, "Wrote dataset to %s\n", *cacheDir)
	return printStats(stdout, *cacheDir, ds.Stats())
}

// loadFlags parses the flags shared by commands that read a cached dataset.
func loadFlags(fs *flag.FlagSet, cfg config.Config, args []string) (*geoingest.Dataset, string, error) {
	cacheDir := fs.String("cache", cfg.CacheDir, "dataset cache directory")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, "", err
		}
		return nil, "", usageError("%v", err)
	}
	opts, err := ingestOptions(cfg)
	if err != nil {
		return nil, "", err
	}
	ds, err := datasets.Load(*cacheDir, opts)
	if err != nil {
		return nil, "", err
	}
	return ds, *cacheDir, nil
}

func runStats(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	ds, dir, err := loadFlags(fs, cfg, args)
	if err != nil {
		return err
	}
	return printStats(stdout, dir, ds.Stats())
}

func runRender(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	out := fs.String("out", "preview.png", "output PNG path")
	width := fs.Int("width", 1024, "image width in pixels")
	height := fs.Int("height", 768, "image height in pixels")
	padding := fs.Int("padding", 16, "margin around the data in pixels")
	zoom := fs.Float64("zoom", 1, "zoom factor about the centre")
	ds, _, err := loadFlags(fs, cfg, args)
	if err != nil {
		return err
	}
	if *width <= 0 || *height <= 0 || *zoom <= 0 {
		return usageError("width, height and zoom must be positive")
	}

	stats := ds.Stats()
	if stats.Empty() {
		return fmt.Errorf("%w: dataset has no coordinates", geoingest.ErrDegenerateGeometry)
	}
	view := render.Fit(stats.Bound, *width, *height, *padding)
	view.Zoom(*zoom)

	if err := render.WritePNG(*out, buildScene(ds), &view); err != nil {
		return fmt.Errorf("%w: write %s: %v", geoingest.ErrIoFailure, *out, err)
	}
	fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", *out, *width, *height)
	return nil
}

// buildScene stacks regions, boundaries and roads, least important road
// class first.
func buildScene(ds *geoingest.Dataset) render.Scene {
	var scene render.Scene
	for i, paths := range ds.RegionPaths() {
		scene.Layers = append(scene.Layers, render.Layer{Paths: paths, Style: render.RegionStyle(ds.Regions[i])})
	}
	scene.Layers = append(scene.Layers, render.Layer{Paths: ds.BoundaryPaths(), Style: render.BoundaryStyle()})
	ways := ds.WayPaths()
	for _, class := range geoingest.Classes {
		scene.Layers = append(scene.Layers, render.Layer{Paths: ways[class], Style: render.ClassStyle(class)})
	}
	scene.Locations = ds.Settlements
	return scene
}

func runQuery(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	at := fs.String("at", "", "query point as x,y in rendering units")
	radius := fs.Float64("radius", 5, "half size of the query box")
	ds, _, err := loadFlags(fs, cfg, args)
	if err != nil {
		return err
	}
	x, y, err := parsePoint(*at)
	if err != nil {
		return err
	}

	idx := geoingest.NewSpatialIndex(ds)
	box := orb.Bound{Min: orb.Point{x - *radius, y - *radius}, Max: orb.Point{x + *radius, y + *radius}}
	counts := map[geoingest.Layer]int{}
	for _, p := range idx.PathsInBounds(box) {
		counts[p.Layer]++
	}
	fmt.Fprintf(stdout, "Paths within %g of (%g, %g): %d ways, %d regions, %d boundaries\n",
		*radius, x, y, counts[geoingest.LayerWays], counts[geoingest.LayerRegions], counts[geoingest.LayerBoundaries])

	arena := geoingest.NewArena(ds.Settlements)
	for _, id := range idx.LocationsInBounds(box) {
		arena.Select(id)
	}
	selected := arena.Selected()
	fmt.Fprintf(stdout, "Settlements in range: %d (population %d)\n", len(selected), arena.Population(selected))

	if _, loc, ok := idx.NearestLocation(x, y); ok {
		fmt.Fprintf(stdout, "Nearest settlement: %s (population %d) at (%.3f, %.3f)\n",
			loc.Name, loc.Population, loc.X, loc.Y)
	} else {
		fmt.Fprintln(stdout, "No settlements in dataset")
	}
	return nil
}

func parsePoint(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, usageError("point %q is not x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, usageError("point %q: %v", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, usageError("point %q: %v", s, err)
	}
	return x, y, nil
}
