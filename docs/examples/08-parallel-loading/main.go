package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

// Read tiles on every core, stopping at the first bad file
func ingestFast(paths []string) (geoingest.Ways, error) {
	opts := geoingest.DefaultIngestOptions()
	opts.Load.Progress = func(done, total int) {
		fmt.Printf("\r  read %d/%d", done, total)
	}
	return geoingest.IngestWays(paths, opts)
}

// Read tiles one at a time, skipping and logging bad files
func ingestTolerant(paths []string) (geoingest.Ways, error) {
	opts := geoingest.DefaultIngestOptions()
	opts.Load.Parallel = false
	opts.Load.SkipErrors = true
	opts.Load.ErrorLog = os.Stderr
	return geoingest.IngestWays(paths, opts)
}

func main() {
	paths, err := geoingest.DiscoverSources("data/oproad", ".shp")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Parallel ===")
	start := time.Now()
	ways, err := ingestFast(paths)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n  %d motorways in %v\n", len(ways[geoingest.ClassMotorway]), time.Since(start))

	fmt.Println("\n=== Serial, skipping errors ===")
	start = time.Now()
	ways, err = ingestTolerant(paths)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  %d motorways in %v\n", len(ways[geoingest.ClassMotorway]), time.Since(start))
}
