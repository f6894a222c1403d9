package geoingest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beetlebugorg/geoingest/internal/ingest"
)

// DiscoverSources walks root and returns every file whose extension matches
// one of exts, case-insensitively, in lexical order. With no exts it returns
// every file a Reader can open (.shp, .geojson, .json, .txt, .tsv).
//
// Example:
//
//	paths, err := geoingest.DiscoverSources("/data/oproad", ".shp")
func DiscoverSources(root string, exts ...string) ([]string, error) {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		want[e] = true
	}

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if len(want) == 0 {
			if _, ferr := ingest.FormatFromPath(path); ferr == nil {
				paths = append(paths, path)
			}
			return nil
		}
		if want[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, &ingest.ErrIoFailure{Path: root, Op: "walk", Err: fmt.Errorf("walk directory: %w", err)}
	}

	slices.Sort(paths)
	return paths, nil
}
