package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

func safeIngestRegions(path string) ([]geoingest.Region, error) {
	opts := geoingest.DefaultIngestOptions()
	// fail on rings with fewer than 3 points instead of dropping them
	opts.SkipDegenerate = false

	regions, err := geoingest.IngestRegions(path, opts)
	if err != nil {
		switch {
		case errors.Is(err, geoingest.ErrIoFailure):
			return nil, fmt.Errorf("region file not readable: %w", err)
		case errors.Is(err, geoingest.ErrMalformedInput):
			log.Printf("Bad source data in %s: %v", path, err)
		case errors.Is(err, geoingest.ErrDegenerateGeometry):
			log.Printf("Degenerate polygon in %s (recoverable): %v", path, err)
		}
		return nil, err
	}

	for _, r := range regions {
		if !r.Known {
			log.Printf("Warning: region %q has unknown id %d", r.Name, r.RegionID)
		}
	}
	return regions, nil
}

func main() {
	regions, err := safeIngestRegions("regions.geojson")
	if err != nil {
		log.Printf("Error: %v (fatal: %v)", err, geoingest.IsFatal(err))
		return
	}
	fmt.Printf("Loaded %d regions\n", len(regions))

	_, err = safeIngestRegions("missing.geojson")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
