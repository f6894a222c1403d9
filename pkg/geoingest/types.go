package geoingest

import "github.com/beetlebugorg/geoingest/internal/ingest"

// Core pipeline types, re-exported so callers never import internal packages.
type (
	RawPoint   = ingest.RawPoint
	Way        = ingest.Way
	Class      = ingest.Class
	Form       = ingest.Form
	Polygon    = ingest.Polygon
	Region     = ingest.Region
	GeoRegion  = ingest.GeoRegion
	Location   = ingest.Location
	Record     = ingest.Record
	RenderPath = ingest.RenderPath
	PathCmd    = ingest.PathCmd
	CRS        = ingest.CRS
	Format     = ingest.Format

	ReaderOptions = ingest.ReaderOptions
)

// Ways groups merged, simplified ways by road class.
type Ways map[Class][]Way

// Road classes.
const (
	ClassMinor        = ingest.ClassMinor
	ClassBRoad        = ingest.ClassBRoad
	ClassARoad        = ingest.ClassARoad
	ClassMotorway     = ingest.ClassMotorway
	ClassUnclassified = ingest.ClassUnclassified
	ClassUnknown      = ingest.ClassUnknown
)

const (
	CRSWGS84       = ingest.CRSWGS84
	CRSWebMercator = ingest.CRSWebMercator
	CRSBritishGrid = ingest.CRSBritishGrid

	FormatShapefile = ingest.FormatShapefile
	FormatGeoJSON   = ingest.FormatGeoJSON
	FormatGeoNames  = ingest.FormatGeoNames
)

// Scale is the divisor applied to projected coordinates.
const Scale = ingest.Scale

// Classes lists every road class in draw order.
var Classes = ingest.Classes

// Error kinds, for use with errors.Is.
var (
	ErrMalformedInput     = ingest.ErrKindMalformed
	ErrIoFailure          = ingest.ErrKindIo
	ErrSchemaMismatch     = ingest.ErrKindSchema
	ErrDegenerateGeometry = ingest.ErrKindDegenerate
)

// IsFatal reports whether err should abort an ingestion run.
func IsFatal(err error) bool { return ingest.IsFatal(err) }

// ParseCRS accepts "EPSG:4326", "4326" and the other supported codes.
func ParseCRS(s string) (CRS, error) { return ingest.ParseCRS(s) }
