package geo

// Entity is a geofence shape: a circle, an edge (capsule), or a grid cell.
// The quadtree stores entities by reference and never mutates them.
type Entity interface {
	// ID is the shape's identifier as read from the map file.
	ID() string
	// BoundingBox returns the smallest axis-aligned box fully containing
	// the shape.
	BoundingBox() Bounds
	// Contains reports whether p falls inside the shape.
	Contains(p Point) bool
	// Intersects reports whether the shape overlaps bounds b at all; used
	// during quadtree insertion to decide which nodes must hold the shape.
	Intersects(b Bounds) bool
}
