package geoingest

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDiscoverSources(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"b/roads_SU.shp",
		"b/roads_SU.dbf",
		"a/roads_TQ.SHP",
		"regions.geojson",
		"GB.txt",
		"README.md",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		exts []string
		want []string
	}{
		{"shapefiles", []string{".shp"}, []string{"a/roads_TQ.SHP", "b/roads_SU.shp"}},
		{"without dot", []string{"geojson"}, []string{"regions.geojson"}},
		{"several", []string{".txt", ".geojson"}, []string{"GB.txt", "regions.geojson"}},
		{"any readable", nil, []string{"GB.txt", "a/roads_TQ.SHP", "b/roads_SU.shp", "regions.geojson"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiscoverSources(root, tt.exts...)
			if err != nil {
				t.Fatalf("DiscoverSources() error = %v", err)
			}
			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.Join(root, w)
			}
			if !slices.Equal(got, want) {
				t.Errorf("DiscoverSources() = %v, want %v", got, want)
			}
		})
	}
}

func TestDiscoverSourcesMissingRoot(t *testing.T) {
	_, err := DiscoverSources(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrIoFailure) {
		t.Errorf("DiscoverSources() error = %v, want io failure", err)
	}
}
