package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beetlebugorg/geoingest/internal/config"
	"github.com/beetlebugorg/geoingest/internal/ingest"
	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"io", &ingest.ErrIoFailure{Path: "x", Op: "open", Err: os.ErrNotExist}, exitIo},
		{"malformed", fmt.Errorf("ingest ways: %w", &ingest.ErrMalformedInput{Reason: "class"}), exitMalformed},
		{"schema", fmt.Errorf("load ways: %w", &ingest.ErrSchemaMismatch{Path: "ways.cbor", Reason: "version"}), exitSchema},
		{"usage", usageError("no sources given"), exitMalformed},
		{"other", errors.New("boom"), exitIo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIngestOptions(t *testing.T) {
	cfg := config.Default()
	cfg.SourceCRS = "4326"
	cfg.MinRadius = 10
	cfg.Countries = []string{"GB", "IE"}
	opts, err := ingestOptions(cfg)
	if err != nil {
		t.Fatalf("ingestOptions() error = %v", err)
	}
	if opts.SourceCRS != geoingest.CRSWGS84 || opts.TargetCRS != geoingest.CRSBritishGrid {
		t.Errorf("CRS = %v -> %v", opts.SourceCRS, opts.TargetCRS)
	}
	if opts.MinRadius != 10 || opts.MinPopulation != 25000 {
		t.Errorf("dedupe = %v, %v", opts.MinRadius, opts.MinPopulation)
	}
	if len(opts.Reader.Countries) != 2 {
		t.Errorf("Countries = %v", opts.Reader.Countries)
	}

	cfg.TargetCRS = "EPSG:2154"
	if _, err := ingestOptions(cfg); !errors.Is(err, geoingest.ErrMalformedInput) {
		t.Errorf("unsupported CRS error = %v, want malformed input", err)
	}
}

func TestParsePoint(t *testing.T) {
	x, y, err := parsePoint(" 530.5, 180 ")
	if err != nil || x != 530.5 || y != 180 {
		t.Errorf("parsePoint() = %v, %v, %v", x, y, err)
	}
	for _, bad := range []string{"", "1", "a,b", "1,2,3"} {
		if _, _, err := parsePoint(bad); !errors.Is(err, errUsage) {
			t.Errorf("parsePoint(%q) error = %v, want usage", bad, err)
		}
	}
}

func TestSourcePaths(t *testing.T) {
	dataDir := t.TempDir()
	roads := filepath.Join(dataDir, "roads")
	if err := os.MkdirAll(filepath.Join(roads, "tiles"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.shp", "tiles/b.shp", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(roads, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := sourcePaths(dataDir, "roads, ", ".shp")
	if err != nil {
		t.Fatalf("sourcePaths() error = %v", err)
	}
	want := []string{filepath.Join(roads, "a.shp"), filepath.Join(roads, "tiles", "b.shp")}
	if strings.Join(got, ";") != strings.Join(want, ";") {
		t.Errorf("sourcePaths() = %v, want %v", got, want)
	}

	if _, err := sourcePaths(dataDir, "missing", ".shp"); !errors.Is(err, geoingest.ErrIoFailure) {
		t.Errorf("missing source error = %v, want io failure", err)
	}
	if p := resolve(dataDir, roads); p != roads {
		t.Errorf("resolve(absolute) = %q, want %q", p, roads)
	}
}

const placesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "London", "population": 8000000},
     "geometry": {"type": "Point", "coordinates": [530000, 180000]}},
    {"type": "Feature", "properties": {"name": "Oxford", "population": 150000},
     "geometry": {"type": "Point", "coordinates": [451000, 206000]}}
  ]
}`

func TestRunIngestStatsQuery(t *testing.T) {
	dir := t.TempDir()
	places := filepath.Join(dir, "places.geojson")
	if err := os.WriteFile(places, []byte(placesGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "cache")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"ingest", "-settlements", places, "-cache", cacheDir}, &stdout, &stderr); code != exitOK {
		t.Fatalf("ingest exit = %d, stderr %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Settlements") {
		t.Errorf("ingest output missing stats: %s", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"query", "-cache", cacheDir, "-at", "450,200", "-radius", "10"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("query exit = %d, stderr %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Settlements in range: 1 (population 150000)") {
		t.Errorf("query output = %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Nearest settlement: Oxford") {
		t.Errorf("query output = %s", stdout.String())
	}

	stdout.Reset()
	png := filepath.Join(dir, "out.png")
	if code := run([]string{"render", "-cache", cacheDir, "-out", png, "-width", "64", "-height", "48"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("render exit = %d, stderr %s", code, stderr.String())
	}
	if _, err := os.Stat(png); err != nil {
		t.Errorf("render wrote nothing: %v", err)
	}
}

func TestRunReusesLoadedDataset(t *testing.T) {
	dir := t.TempDir()
	places := filepath.Join(dir, "places.geojson")
	if err := os.WriteFile(places, []byte(placesGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "cache")
	var stdout, stderr bytes.Buffer
	ingestArgs := []string{"ingest", "-settlements", places, "-cache", cacheDir}
	if code := run(ingestArgs, &stdout, &stderr); code != exitOK {
		t.Fatalf("ingest exit = %d, stderr %s", code, stderr.String())
	}

	before := datasets.Stats()
	steps := []struct {
		args       []string
		wantMisses int
		wantHits   int
	}{
		{[]string{"stats", "-cache", cacheDir}, 1, 0},
		{[]string{"query", "-cache", cacheDir, "-at", "450,200"}, 1, 1},
		{ingestArgs, 1, 1},
		{[]string{"stats", "-cache", cacheDir}, 2, 1},
	}
	for _, st := range steps {
		if code := run(st.args, &stdout, &stderr); code != exitOK {
			t.Fatalf("run(%v) exit = %d, stderr %s", st.args, code, stderr.String())
		}
		s := datasets.Stats()
		if s.Misses-before.Misses != st.wantMisses || s.Hits-before.Hits != st.wantHits {
			t.Errorf("after %v: misses %d hits %d, want %d and %d",
				st.args[0], s.Misses-before.Misses, s.Hits-before.Hits, st.wantMisses, st.wantHits)
		}
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, exitMalformed},
		{"unknown command", []string{"serve"}, exitMalformed},
		{"help", []string{"help"}, exitOK},
		{"ingest without sources", []string{"ingest", "-cache", t.TempDir()}, exitMalformed},
		{"bad flag", []string{"stats", "-nope"}, exitMalformed},
		{"missing cache", []string{"stats", "-cache", filepath.Join(t.TempDir(), "none")}, exitIo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run(%v) = %d, want %d; stderr %s", tt.args, got, tt.want, stderr.String())
			}
		})
	}
}
