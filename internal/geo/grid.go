package geo

// Grid is an axis-aligned rectangular geofence cell, identified by its
// Row/Col position in a masked-region mosaic (see the shape loader).
type Grid struct {
	IDValue  string
	Cell     Bounds
	Row, Col uint32
}

func (g Grid) ID() string { return g.IDValue }

func (g Grid) BoundingBox() Bounds { return g.Cell }

// Contains reports inclusion using simple bounds containment.
func (g Grid) Contains(p Point) bool { return g.Cell.Contains(p) }

// Intersects reports bounds overlap.
func (g Grid) Intersects(b Bounds) bool { return g.Cell.Overlaps(b) }
