package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

func main() {
	opts := geoingest.DefaultIngestOptions()

	// Find road shapefiles
	roads, err := geoingest.DiscoverSources("data/oproad", ".shp")
	if err != nil {
		log.Fatal(err)
	}

	// Ingest roads and regions
	ds, err := geoingest.IngestDataset(geoingest.Sources{
		Roads:   roads,
		Regions: "data/regions.geojson",
	}, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Cache for fast reload
	if err := ds.Save("cache"); err != nil {
		log.Fatal(err)
	}

	stats := ds.Stats()
	fmt.Printf("Ways: %d points\n", stats.WayPoints)
	fmt.Printf("Regions: %d (%d polygons)\n", stats.Regions, stats.Polygons)
	fmt.Printf("Bounds: [%.1f,%.1f] to [%.1f,%.1f]\n",
		stats.Bound.Min[0], stats.Bound.Min[1],
		stats.Bound.Max[0], stats.Bound.Max[1])
}
