package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

// Count points kept at a given simplification tolerance
func pointsAt(paths []string, tolerance float64) (int, error) {
	opts := geoingest.DefaultIngestOptions()
	opts.Tolerance = tolerance

	ways, err := geoingest.IngestWays(paths, opts)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, list := range ways {
		for _, w := range list {
			n += len(w.Points)
		}
	}
	return n, nil
}

func main() {
	paths, err := geoingest.DiscoverSources("data/oproad", ".shp")
	if err != nil {
		log.Fatal(err)
	}

	// Tolerance is in kilometres; 0 keeps every vertex
	for _, tol := range []float64{0, 0.001, 0.01, 0.1} {
		n, err := pointsAt(paths, tol)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("tolerance %-6g %d points\n", tol, n)
	}
}
