// Package geoingest reduces national GIS vector data into a compact,
// renderable dataset and caches it for fast reload.
//
// Three kinds of source are handled: road linework (ESRI shapefiles or
// GeoJSON), administrative region polygons, and settlement points
// (shapefile, GeoJSON, or a GeoNames gazetteer dump). Every coordinate is
// projected into rendering units before it is stored.
//
// # Basic Usage
//
//	opts := geoingest.DefaultIngestOptions()
//	roads, err := geoingest.DiscoverSources("/data/oproad", ".shp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds, err := geoingest.IngestDataset(geoingest.Sources{
//	    Roads:       roads,
//	    Regions:     "/data/regions.geojson",
//	    Settlements: "/data/GB.txt",
//	}, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ds.Save("/var/cache/geoingest"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Road Pipeline
//
// Road records that share a road number are merged into one Way. The merged
// linework is rebuilt as a segment graph, so segments digitized in either
// direction join up, then walked depth-first into simple paths and
// simplified with Douglas-Peucker:
//
//	ways, err := geoingest.IngestWays(roads, opts)
//	for _, class := range geoingest.Classes {
//	    fmt.Printf("%v: %d ways\n", class, len(ways[class]))
//	}
//
// # Reloading
//
// LoadDataset reads the cache written by Save. A cache written by an older
// version, or with a different coordinate scale, fails with
// ErrSchemaMismatch and must be regenerated from source:
//
//	ds, err := geoingest.LoadDataset(dir, opts)
//	if errors.Is(err, geoingest.ErrSchemaMismatch) {
//	    ds, err = geoingest.IngestDataset(src, opts)
//	}
//
// Settlements are de-duplicated at load time, so changing MinRadius does
// not require a new ingest.
//
// # Rendering and Queries
//
// Dataset.WayPaths, RegionPaths and BoundaryPaths convert stored geometry
// into RenderPath command lists. Region paths carry their holes and answer
// point containment with the even-odd rule. A SpatialIndex answers viewport
// and nearest-settlement queries:
//
//	idx := geoingest.NewSpatialIndex(ds)
//	visible := idx.PathsInBounds(view)
//	id, loc, ok := idx.NearestLocation(x, y)
//
// An Arena holds settlements by stable LocationID so selection and
// ownership are plain index sets.
//
// # Errors
//
// Errors match one of ErrMalformedInput, ErrIoFailure, ErrSchemaMismatch or
// ErrDegenerateGeometry with errors.Is. Only degenerate geometry is
// recoverable; with SkipDegenerate set it is dropped and counted.
package geoingest
