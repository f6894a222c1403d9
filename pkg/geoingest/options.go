package geoingest

import (
	"io"
	"runtime"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geoingest/internal/ingest"
)

// IngestOptions configures every ingestion entry point.
type IngestOptions struct {
	// SourceCRS and TargetCRS select the projection applied to every
	// coordinate before it is stored. Both default to British National Grid,
	// the reference system of the road and terrain products.
	SourceCRS CRS
	TargetCRS CRS

	// Tolerance is the Douglas-Peucker tolerance in rendering units.
	// Zero or negative disables simplification.
	Tolerance float64

	// Precision is the grid used to decide that two way endpoints are the
	// same graph node, in rendering units. Zero means exact equality.
	Precision float64

	// MinRadius and MinPopulation drive settlement de-duplication at load time.
	MinRadius     float64
	MinPopulation int64

	// Reader maps source attributes and filters gazetteer rows. Its
	// NameField applies to roads.
	Reader ingest.ReaderOptions

	// PlaceNameField is the name attribute of region and settlement features.
	PlaceNameField string

	// SkipDegenerate drops zero-length ways and rings with fewer than
	// 3 points instead of failing the run.
	SkipDegenerate bool

	// Load controls how multiple source files are read.
	Load LoadOptions
}

// DefaultIngestOptions returns the settings used for the national road and
// settlement layers.
func DefaultIngestOptions() IngestOptions {
	return IngestOptions{
		SourceCRS:      CRSBritishGrid,
		TargetCRS:      CRSBritishGrid,
		Tolerance:      0.001,
		Precision:      1e-6,
		MinRadius:      25.0,
		MinPopulation:  25000,
		Reader:         ingest.DefaultReaderOptions(),
		PlaceNameField: "name",
		SkipDegenerate: true,
		Load:           DefaultLoadOptions(),
	}
}

// placeReader maps region, boundary and settlement attributes: names are
// optional and road classification is not decoded.
func (o IngestOptions) placeReader() ingest.ReaderOptions {
	r := o.Reader
	r.NameField = o.PlaceNameField
	r.ClassField = ""
	r.FormField = ""
	r.RequireName = false
	return r
}

// WithBounds limits gazetteer rows to a lon/lat box.
func (o IngestOptions) WithBounds(b orb.Bound) IngestOptions {
	o.Reader.Bounds = &b
	return o
}

// WithCountries limits gazetteer rows to ISO country codes.
func (o IngestOptions) WithCountries(codes ...string) IngestOptions {
	o.Reader.Countries = append([]string(nil), codes...)
	return o
}

// LoadOptions controls parallel reading of source files.
type LoadOptions struct {
	// Parallel reads files on multiple goroutines. Records keep the order of
	// the input paths regardless.
	Parallel bool

	// Workers is the number of reader goroutines. 0 means runtime.NumCPU().
	Workers int

	// SkipErrors continues past files that fail to read and returns their
	// errors alongside the records that were read. When false the first
	// error aborts the run.
	SkipErrors bool

	// Progress is called after each file with the number of files done.
	Progress func(done, total int)

	// ErrorLog receives one line per failed file.
	ErrorLog io.Writer
}

// DefaultLoadOptions reads in parallel and fails fast.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel: true,
		Workers:  runtime.NumCPU(),
	}
}
