package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

func main() {
	opts := geoingest.DefaultIngestOptions()

	// A GeoJSON road export with its own property names
	opts.Reader.NameField = "ref"
	opts.Reader.ClassField = "road_class"
	opts.Reader.FormField = "" // not present, skip form decoding

	// Settlements keyed by "town" with population in "pop"
	opts.PlaceNameField = "town"
	opts.Reader.PopulationField = "pop"

	ways, err := geoingest.IngestWays([]string{"roads.geojson"}, opts)
	if err != nil {
		log.Fatal(err)
	}
	for _, class := range geoingest.Classes {
		for _, w := range ways[class] {
			fmt.Printf("%-10v %-8s %d points\n", class, w.Name, len(w.Points))
		}
	}

	towns, err := geoingest.IngestSettlements("towns.geojson", geoingest.FormatGeoJSON, opts)
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range towns {
		fmt.Printf("%s: %d\n", t.Name, t.Population)
	}
}
