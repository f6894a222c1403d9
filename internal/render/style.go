package render

import (
	"image/color"

	"github.com/beetlebugorg/geoingest/internal/ingest"
)

// Style is how one layer is painted. Width is in pixels; a zero Width means
// no stroke and a zero alpha Fill means no fill.
type Style struct {
	Fill   color.RGBA
	Stroke color.RGBA
	Width  float64
}

var (
	background    = color.RGBA{0xF2, 0xEF, 0xE9, 0xFF}
	boundaryStyle = Style{Stroke: color.RGBA{0x4A, 0x6F, 0x8A, 0xFF}, Width: 1}
	locationStyle = Style{Fill: color.RGBA{0x20, 0x20, 0x20, 0xFF}}
)

var classStyles = map[ingest.Class]Style{
	ingest.ClassUnknown:      {Stroke: color.RGBA{0xC8, 0xC8, 0xC8, 0xFF}, Width: 0.5},
	ingest.ClassUnclassified: {Stroke: color.RGBA{0xB0, 0xB0, 0xB0, 0xFF}, Width: 0.5},
	ingest.ClassMinor:        {Stroke: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, Width: 0.75},
	ingest.ClassBRoad:        {Stroke: color.RGBA{0xF7, 0xFA, 0xBF, 0xFF}, Width: 1},
	ingest.ClassARoad:        {Stroke: color.RGBA{0xFC, 0xD6, 0xA4, 0xFF}, Width: 1.5},
	ingest.ClassMotorway:     {Stroke: color.RGBA{0xE8, 0x92, 0xA2, 0xFF}, Width: 2},
}

// ClassStyle is the stroke for a road class.
func ClassStyle(c ingest.Class) Style {
	if s, ok := classStyles[c]; ok {
		return s
	}
	return classStyles[ingest.ClassUnknown]
}

// BoundaryStyle strokes land and water boundary lines.
func BoundaryStyle() Style { return boundaryStyle }

// RegionStyle fills a region with its sub-region colour.
func RegionStyle(r ingest.Region) Style {
	fill := r.Region.Colour()
	if !r.Known {
		fill = ingest.GeoRegion(0).Colour()
	}
	return Style{Fill: fill, Stroke: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, Width: 0.5}
}
