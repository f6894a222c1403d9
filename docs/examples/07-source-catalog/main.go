package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

type SourceInfo struct {
	Path   string
	Ways   int
	Points int
}

func buildCatalog(paths []string) []SourceInfo {
	opts := geoingest.DefaultIngestOptions()
	catalog := make([]SourceInfo, 0, len(paths))

	for _, path := range paths {
		ways, err := geoingest.IngestWays([]string{path}, opts)
		if err != nil {
			log.Printf("Failed to ingest %s: %v\n", path, err)
			continue
		}

		info := SourceInfo{Path: path}
		for _, list := range ways {
			info.Ways += len(list)
			for _, w := range list {
				info.Points += len(w.Points)
			}
		}
		catalog = append(catalog, info)
	}
	return catalog
}

func main() {
	// Every readable source under data/
	paths, err := geoingest.DiscoverSources("data", ".shp", ".geojson")
	if err != nil {
		log.Fatal(err)
	}

	catalog := buildCatalog(paths)
	fmt.Printf("Catalog contains %d sources\n\n", len(catalog))

	for _, info := range catalog {
		fmt.Printf("%s\n", filepath.Base(info.Path))
		fmt.Printf("  Ways: %d\n", info.Ways)
		fmt.Printf("  Points: %d\n", info.Points)
	}
}
