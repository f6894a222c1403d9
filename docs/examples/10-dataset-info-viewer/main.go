package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

func main() {
	cacheDir := flag.String("cache", "", "Path to dataset cache directory")
	flag.Parse()

	if *cacheDir == "" {
		log.Fatal("Please provide -cache path")
	}

	ds, err := geoingest.LoadDataset(*cacheDir, geoingest.DefaultIngestOptions())
	if err != nil {
		log.Fatal(err)
	}
	stats := ds.Stats()

	fmt.Printf("=== Dataset Information ===\n")
	fmt.Printf("Regions: %d\n", stats.Regions)
	fmt.Printf("Boundaries: %d\n", stats.Boundaries)
	fmt.Printf("Settlements: %d\n\n", stats.Settlements)

	fmt.Printf("=== Bounds (km) ===\n")
	fmt.Printf("Easting: %.1f to %.1f\n", stats.Bound.Min[0], stats.Bound.Max[0])
	fmt.Printf("Northing: %.1f to %.1f\n\n", stats.Bound.Min[1], stats.Bound.Max[1])

	fmt.Printf("=== Ways by Class ===\n")
	for _, class := range geoingest.Classes {
		fmt.Printf("%-12v: %d\n", class, stats.Ways[class])
	}

	// Largest settlements after de-duplication
	fmt.Printf("\n=== Top Settlements ===\n")
	for i, l := range ds.Settlements {
		if i == 5 {
			break
		}
		fmt.Printf("%-20s %d\n", l.Name, l.Population)
	}
}
