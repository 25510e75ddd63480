package geo

// Circle is a geofence shape retaining or excluding vehicles within
// RadiusM meters (great-circle distance) of Center.
type Circle struct {
	IDValue string
	Center  Point
	RadiusM float64
}

func (c Circle) ID() string { return c.IDValue }

// BoundingBox returns a rectangle large enough to enclose the circle,
// using the equirectangular meters-to-degrees conversion at the center
// latitude.
func (c Circle) BoundingBox() Bounds {
	dLat, dLon := metersToDegrees(c.RadiusM, c.Center.Lat)
	return Bounds{
		SW: Point{Lat: c.Center.Lat - dLat, Lon: c.Center.Lon - dLon},
		NE: Point{Lat: c.Center.Lat + dLat, Lon: c.Center.Lon + dLon},
	}
}

// Contains reports whether p lies within RadiusM of the center, using
// great-circle distance.
func (c Circle) Contains(p Point) bool {
	return GreatCircleDistance(c.Center, p) <= c.RadiusM
}

// Intersects reports whether the closest point of b to the circle's
// center lies within RadiusM.
func (c Circle) Intersects(b Bounds) bool {
	closest := b.ClosestPoint(c.Center)
	return GreatCircleDistance(c.Center, closest) <= c.RadiusM
}
