package main

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

// Settlements in Great Britain only
func britishSettlements(path string) ([]geoingest.Location, error) {
	opts := geoingest.DefaultIngestOptions().WithCountries("GB")
	return geoingest.IngestSettlements(path, geoingest.FormatGeoNames, opts)
}

// Settlements inside a lon/lat box, any country
func settlementsIn(path string, box orb.Bound) ([]geoingest.Location, error) {
	opts := geoingest.DefaultIngestOptions().WithBounds(box)
	return geoingest.IngestSettlements(path, geoingest.FormatGeoNames, opts)
}

func main() {
	gb, err := britishSettlements("allCountries.txt")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("GB settlements: %d\n", len(gb))
	if len(gb) > 0 {
		fmt.Printf("Largest: %s (%d)\n", gb[0].Name, gb[0].Population)
	}

	// Cornwall and Devon
	southWest := orb.Bound{Min: orb.Point{-6.0, 49.9}, Max: orb.Point{-3.0, 51.3}}
	sw, err := settlementsIn("allCountries.txt", southWest)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("South west settlements: %d\n", len(sw))
}
