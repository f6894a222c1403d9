package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

var sources = geoingest.Sources{
	Regions:     "data/regions.geojson",
	Settlements: "data/GB.txt",
}

// Load the cache through dc, rebuilding it from source when missing or
// out of date
func loadOrIngest(dc *geoingest.DatasetCache, dir string, opts geoingest.IngestOptions) (*geoingest.Dataset, error) {
	ds, err := dc.Load(dir, opts)
	switch {
	case err == nil:
		return ds, nil
	case errors.Is(err, geoingest.ErrSchemaMismatch):
		fmt.Println("Cache written by another version, regenerating")
	case errors.Is(err, geoingest.ErrIoFailure):
		fmt.Println("No cache yet, ingesting")
	default:
		return nil, err
	}

	ds, err = geoingest.IngestDataset(sources, opts)
	if err != nil {
		return nil, err
	}
	if err := ds.Save(dir); err != nil {
		return nil, err
	}
	dc.Invalidate(dir)
	// reload so settlements are de-duplicated the same way as a cache hit
	return dc.Load(dir, opts)
}

func main() {
	opts := geoingest.DefaultIngestOptions()

	// Keep loaded datasets in memory across requests
	dc := geoingest.NewDatasetCache(256 * 1024 * 1024)
	for i := 0; i < 2; i++ {
		ds, err := loadOrIngest(dc, "cache", opts)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Settlements: %d\n", len(ds.Settlements))
	}

	s := dc.Stats()
	fmt.Printf("Cached datasets: %d (%d hits, %d misses)\n", s.DatasetCount, s.Hits, s.Misses)
}
