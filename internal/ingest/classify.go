package ingest

import (
	"fmt"
	"image/color"
	"strings"
)

// Class is the road importance class of a way
type Class int

const (
	ClassMinor Class = iota
	ClassBRoad
	ClassARoad
	ClassMotorway
	ClassUnclassified
	ClassUnknown
)

// Classes lists every class in draw order, least important first.
var Classes = []Class{
	ClassUnknown,
	ClassUnclassified,
	ClassMinor,
	ClassBRoad,
	ClassARoad,
	ClassMotorway,
}

var classNames = map[Class]string{
	ClassMinor:        "Minor",
	ClassBRoad:        "BRoad",
	ClassARoad:        "ARoad",
	ClassMotorway:     "Motorway",
	ClassUnclassified: "Unclassified",
	ClassUnknown:      "Unknown",
}

// Source attribute values, as written by the road network products.
var classValues = map[string]Class{
	"a road":         ClassARoad,
	"b road":         ClassBRoad,
	"motorway":       ClassMotorway,
	"minor road":     ClassMinor,
	"minor":          ClassMinor,
	"unclassified":   ClassUnclassified,
	"not classified": ClassUnclassified,
	"unknown":        ClassUnknown,
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseClass decodes a class attribute. Unrecognized values are MalformedInput.
func ParseClass(s string) (Class, error) {
	if c, ok := classValues[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, &ErrMalformedInput{Reason: fmt.Sprintf("unknown road class %q", s)}
}

// Form is the physical form of a way
type Form int

const (
	FormSingleCarriageway Form = iota
	FormDualCarriageway
	FormCollapsedDualCarriageway
	FormRoundabout
	FormSlipRoad
	FormTransitWay
)

var formNames = map[Form]string{
	FormSingleCarriageway:        "SingleCarriageway",
	FormDualCarriageway:          "DualCarriageway",
	FormCollapsedDualCarriageway: "CollapsedDualCarriageway",
	FormRoundabout:               "Roundabout",
	FormSlipRoad:                 "SlipRoad",
	FormTransitWay:               "TransitWay",
}

var formValues = map[string]Form{
	"single carriageway":         FormSingleCarriageway,
	"dual carriageway":           FormDualCarriageway,
	"collapsed dual carriageway": FormCollapsedDualCarriageway,
	"roundabout":                 FormRoundabout,
	"slip road":                  FormSlipRoad,
	"guided busway":              FormTransitWay,
	"transit way":                FormTransitWay,
}

func (f Form) String() string {
	if s, ok := formNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Form(%d)", int(f))
}

// ParseForm decodes a form-of-way attribute. Unrecognized values are MalformedInput.
func ParseForm(s string) (Form, error) {
	if f, ok := formValues[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, &ErrMalformedInput{Reason: fmt.Sprintf("unknown form of way %q", s)}
}

// GeoRegion is a UN M49 geographic sub-region
type GeoRegion int

const (
	RegionAustraliaAndNewZealand GeoRegion = iota
	RegionCentralAsia
	RegionEasternAsia
	RegionEasternEurope
	RegionLatinAmericaAndCaribbean
	RegionMelanesia
	RegionMicronesia
	RegionNorthernAfrica
	RegionNorthernAmerica
	RegionNorthernEurope
	RegionPolynesia
	RegionSouthEasternAsia
	RegionSouthernAsia
	RegionSouthernEurope
	RegionSubSaharanAfrica
	RegionWesternAsia
	RegionWesternEurope
)

// M49 sub-region codes
var regionIDs = map[int]GeoRegion{
	53:  RegionAustraliaAndNewZealand,
	143: RegionCentralAsia,
	30:  RegionEasternAsia,
	151: RegionEasternEurope,
	419: RegionLatinAmericaAndCaribbean,
	54:  RegionMelanesia,
	57:  RegionMicronesia,
	15:  RegionNorthernAfrica,
	21:  RegionNorthernAmerica,
	154: RegionNorthernEurope,
	61:  RegionPolynesia,
	35:  RegionSouthEasternAsia,
	34:  RegionSouthernAsia,
	39:  RegionSouthernEurope,
	202: RegionSubSaharanAfrica,
	145: RegionWesternAsia,
	155: RegionWesternEurope,
}

var regionNames = [...]string{
	"AustraliaAndNewZealand",
	"CentralAsia",
	"EasternAsia",
	"EasternEurope",
	"LatinAmericaAndCaribbean",
	"Melanesia",
	"Micronesia",
	"NorthernAfrica",
	"NorthernAmerica",
	"NorthernEurope",
	"Polynesia",
	"SouthEasternAsia",
	"SouthernAsia",
	"SouthernEurope",
	"SubSaharanAfrica",
	"WesternAsia",
	"WesternEurope",
}

// One colour per region, indexed by GeoRegion.
var regionPalette = [...]color.RGBA{
	{0xA0, 0x64, 0x14, 0xFF}, // rust
	{0x5C, 0x9C, 0xD0, 0xFF}, // steel blue
	{0x98, 0x5A, 0xB5, 0xFF}, // purple
	{0x2C, 0xA0, 0x2C, 0xFF}, // forest green
	{0xD0, 0xA0, 0x14, 0xFF}, // gold
	{0x50, 0x3A, 0x3C, 0xFF}, // mahogany
	{0x00, 0x7D, 0x00, 0xFF}, // bottle green
	{0xE0, 0x42, 0x14, 0xFF}, // burnt orange
	{0xA5, 0x14, 0x14, 0xFF}, // crimson
	{0x72, 0x84, 0x40, 0xFF}, // olive
	{0x78, 0x44, 0x28, 0xFF}, // copper
	{0x9B, 0x14, 0x14, 0xFF}, // maroon
	{0x7A, 0x4A, 0x24, 0xFF}, // umber
	{0x45, 0x50, 0x45, 0xFF}, // jungle green
	{0x00, 0x64, 0xA5, 0xFF}, // cerulean
	{0x63, 0x14, 0xA5, 0xFF}, // indigo
	{0xFF, 0xB5, 0x14, 0xFF}, // amber
}

// RegionFromID looks up an M49 sub-region code.
func RegionFromID(id int) (GeoRegion, bool) {
	r, ok := regionIDs[id]
	return r, ok
}

func (r GeoRegion) String() string {
	if r >= 0 && int(r) < len(regionNames) {
		return regionNames[r]
	}
	return fmt.Sprintf("GeoRegion(%d)", int(r))
}

// Colour returns the fill colour for the region.
func (r GeoRegion) Colour() color.RGBA {
	if r >= 0 && int(r) < len(regionPalette) {
		return regionPalette[r]
	}
	return color.RGBA{0x80, 0x80, 0x80, 0xFF}
}
