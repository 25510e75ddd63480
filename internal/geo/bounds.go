package geo

import "math"

// Bounds is an axis-aligned lat/lon rectangle, defined by its southwest and
// northeast corners. It never wraps the antimeridian.
type Bounds struct {
	SW Point
	NE Point
}

// Valid reports whether the bounds are well formed: sw.Lat <= ne.Lat and
// sw.Lon <= ne.Lon.
func (b Bounds) Valid() bool {
	return b.SW.Lat <= b.NE.Lat && b.SW.Lon <= b.NE.Lon
}

// Contains reports whether p falls within b, inclusive of the boundary.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.SW.Lat && p.Lat <= b.NE.Lat &&
		p.Lon >= b.SW.Lon && p.Lon <= b.NE.Lon
}

// Overlaps reports whether b and other share any area or touch along an
// edge or corner.
func (b Bounds) Overlaps(other Bounds) bool {
	return b.SW.Lat <= other.NE.Lat && b.NE.Lat >= other.SW.Lat &&
		b.SW.Lon <= other.NE.Lon && b.NE.Lon >= other.SW.Lon
}

// Expand returns a copy of b grown by meters in every direction, used to
// test capsule-against-rectangle intersection by inflating the rectangle
// by an edge's half-width.
func (b Bounds) Expand(meters float64) Bounds {
	if meters <= 0 {
		return b
	}
	centerLat := (b.SW.Lat + b.NE.Lat) / 2
	dLat, dLon := metersToDegrees(meters, centerLat)
	return Bounds{
		SW: Point{Lat: b.SW.Lat - dLat, Lon: b.SW.Lon - dLon},
		NE: Point{Lat: b.NE.Lat + dLat, Lon: b.NE.Lon + dLon},
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{
		Lat: (b.SW.Lat + b.NE.Lat) / 2,
		Lon: (b.SW.Lon + b.NE.Lon) / 2,
	}
}

// ClosestPoint returns the point within b closest to p. When p is already
// inside b, ClosestPoint returns p itself.
func (b Bounds) ClosestPoint(p Point) Point {
	return Point{
		Lat: clamp(p.Lat, b.SW.Lat, b.NE.Lat),
		Lon: clamp(p.Lon, b.SW.Lon, b.NE.Lon),
	}
}

// Quadrants splits b into four equal quadrants in a fixed, deterministic
// order: NW, NE, SW, SE. The order matters for the quadtree's tie-break
// rule on shared borders.
func (b Bounds) Quadrants() (nw, ne, sw, se Bounds) {
	mid := b.Center()
	nw = Bounds{SW: Point{Lat: mid.Lat, Lon: b.SW.Lon}, NE: Point{Lat: b.NE.Lat, Lon: mid.Lon}}
	ne = Bounds{SW: mid, NE: b.NE}
	sw = Bounds{SW: b.SW, NE: mid}
	se = Bounds{SW: Point{Lat: b.SW.Lat, Lon: mid.Lon}, NE: Point{Lat: mid.Lat, Lon: b.NE.Lon}}
	return nw, ne, sw, se
}

// metersToDegrees converts a meter offset into an approximate (dLat, dLon)
// degree offset at the given reference latitude.
func metersToDegrees(meters, refLat float64) (dLat, dLon float64) {
	const degToRad = 3.141592653589793 / 180.0
	dLat = meters / EarthRadiusM / degToRad
	cosLat := math.Cos(refLat * degToRad)
	if cosLat < 1e-9 {
		cosLat = 1e-9
	}
	dLon = meters / (EarthRadiusM * cosLat) / degToRad
	return dLat, dLon
}
