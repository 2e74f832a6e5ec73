package places

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// metersPerDegree is the flat-earth conversion used for the search box.
// Longitude is not scaled by cos(latitude).
const metersPerDegree = 111000.0

// categoryKeys are the tag keys queried inside the bounding box, in the
// priority order used to pick a record's category.
var categoryKeys = []string{
	"amenity",
	"shop",
	"tourism",
	"leisure",
	"office",
	"healthcare",
	"education",
}

// aroundAmenities are queried as points around the exact centre.
var aroundAmenities = []string{
	"restaurant",
	"hotel",
	"supermarket",
	"mall",
	"school",
	"church",
	"lounge",
	"club",
}

// DegreeDelta converts a radius in meters into the half-width of the
// search box in degrees.
func DegreeDelta(radiusMeters float64) float64 {
	return radiusMeters / metersPerDegree
}

// BoundingBox returns the axis-aligned box centred on (lat, lon) with a
// half-width of DegreeDelta(radiusMeters) on both axes.
func BoundingBox(lat, lon, radiusMeters float64) orb.Bound {
	d := DegreeDelta(radiusMeters)
	return orb.Bound{
		Min: orb.Point{lon - d, lat - d},
		Max: orb.Point{lon + d, lat + d},
	}
}

// overpassBBox formats a bound in Overpass order: south,west,north,east.
func overpassBBox(b orb.Bound) string {
	return fmt.Sprintf("%s,%s,%s,%s",
		formatDegrees(b.Min.Lat()), formatDegrees(b.Min.Lon()),
		formatDegrees(b.Max.Lat()), formatDegrees(b.Max.Lon()))
}

func formatDegrees(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.7f", v), "0"), ".")
}

// BuildQuery returns the Overpass QL script for a nearby search.
func BuildQuery(lat, lon, radiusMeters float64) string {
	bbox := overpassBBox(BoundingBox(lat, lon, radiusMeters))
	around := fmt.Sprintf("around:%s,%s,%s",
		formatDegrees(radiusMeters), formatDegrees(lat), formatDegrees(lon))

	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, key := range categoryKeys {
		for _, kind := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&b, "  %s[%q](%s);\n", kind, key, bbox)
		}
	}
	fmt.Fprintf(&b, "  node[\"shop\"](%s);\n", around)
	for _, v := range aroundAmenities {
		fmt.Fprintf(&b, "  node[\"amenity\"=%q](%s);\n", v, around)
	}
	b.WriteString(");\nout center;\n")
	return b.String()
}
