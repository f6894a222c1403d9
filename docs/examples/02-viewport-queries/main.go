package main

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

func main() {
	ds, err := geoingest.LoadDataset("cache", geoingest.DefaultIngestOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Build R-tree over every render path
	idx := geoingest.NewSpatialIndex(ds)

	// Viewport around central London, in kilometres of British National Grid
	viewport := orb.Bound{
		Min: orb.Point{520, 170},
		Max: orb.Point{540, 190},
	}

	paths := idx.PathsInBounds(viewport)
	fmt.Printf("Visible paths: %d\n", len(paths))

	for _, p := range paths {
		if p.Layer == geoingest.LayerWays {
			fmt.Printf("  %s %v: %d commands\n", p.Layer, p.Class, p.Path.Len())
		}
	}

	// Nearest settlement to the viewport centre
	c := viewport.Center()
	if _, loc, ok := idx.NearestLocation(c[0], c[1]); ok {
		fmt.Printf("Nearest settlement: %s\n", loc.Name)
	}
}
