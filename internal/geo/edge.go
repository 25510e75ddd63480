package geo

import "math"

// Edge is a capsule-shaped geofence shape: the set of points within
// WidthM/2 meters of the line segment from A to B.
type Edge struct {
	IDValue string
	A, B    Point
	WidthM  float64
}

func (e Edge) ID() string { return e.IDValue }

// BoundingBox returns the segment's bounding box expanded by half the
// capsule width.
func (e Edge) BoundingBox() Bounds {
	sw := Point{Lat: math.Min(e.A.Lat, e.B.Lat), Lon: math.Min(e.A.Lon, e.B.Lon)}
	ne := Point{Lat: math.Max(e.A.Lat, e.B.Lat), Lon: math.Max(e.A.Lon, e.B.Lon)}
	return Bounds{SW: sw, NE: ne}.Expand(e.WidthM / 2)
}

// Contains implements the capsule containment test: project p onto
// segment AB, clamp the projection parameter to [0,1], and compare the
// distance from p to the projected point against WidthM/2.
func (e Edge) Contains(p Point) bool {
	return e.distanceToSegment(p) <= e.WidthM/2
}

// Intersects implements capsule-rectangle intersection by expanding b by
// the capsule's half-width and testing for segment/rectangle overlap.
func (e Edge) Intersects(b Bounds) bool {
	inflated := b.Expand(e.WidthM / 2)
	return segmentIntersectsBounds(e.A, e.B, inflated)
}

// distanceToSegment returns the planar distance in meters from p to the
// segment AB, using the equirectangular projection centered at the
// segment's midpoint latitude so the parameterization math can be done in
// a flat local frame.
func (e Edge) distanceToSegment(p Point) float64 {
	refLat := (e.A.Lat + e.B.Lat) / 2
	bx, by := equirectangular(e.A, e.B, refLat) // A is the local origin
	px, py := equirectangular(e.A, p, refLat)

	abLenSq := bx*bx + by*by

	var t float64
	if abLenSq > 0 {
		t = (px*bx + py*by) / abLenSq
	}
	t = clamp(t, 0, 1)

	projX := t * bx
	projY := t * by
	return math.Hypot(px-projX, py-projY)
}

// segmentIntersectsBounds reports whether the segment a-b crosses, enters,
// or lies within the rectangle b. It first rejects on a trivial
// bounding-box check and then clips the segment against the rectangle's
// four half-planes (Liang-Barsky), which correctly handles a segment that
// clips through a corner without either endpoint being inside.
func segmentIntersectsBounds(a, b Point, box Bounds) bool {
	segBox := Bounds{
		SW: Point{Lat: math.Min(a.Lat, b.Lat), Lon: math.Min(a.Lon, b.Lon)},
		NE: Point{Lat: math.Max(a.Lat, b.Lat), Lon: math.Max(a.Lon, b.Lon)},
	}
	if !segBox.Overlaps(box) {
		return false
	}
	if box.Contains(a) || box.Contains(b) {
		return true
	}

	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	tMin, tMax := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > tMax {
				return false
			}
			if r > tMin {
				tMin = r
			}
		} else {
			if r < tMin {
				return false
			}
			if r < tMax {
				tMax = r
			}
		}
		return true
	}

	return clip(-dx, a.Lon-box.SW.Lon) &&
		clip(dx, box.NE.Lon-a.Lon) &&
		clip(-dy, a.Lat-box.SW.Lat) &&
		clip(dy, box.NE.Lat-a.Lat)
}
