package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: 35.96, Lon: -83.92}.Valid())
	assert.False(t, Point{Lat: 91, Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: 181}.Valid())
}

func TestGreatCircleDistanceZero(t *testing.T) {
	p := Point{Lat: 35.9606, Lon: -83.9207}
	assert.InDelta(t, 0, GreatCircleDistance(p, p), 1e-9)
}

func TestCircleContains(t *testing.T) {
	c := Circle{IDValue: "c1", Center: Point{Lat: 35.9606, Lon: -83.9207}, RadiusM: 1000}

	inside := Point{Lat: 35.9610, Lon: -83.9200}
	outside := Point{Lat: 36.0, Lon: -84.0}

	assert.True(t, c.Contains(inside), "expected point inside circle to be contained")
	assert.False(t, c.Contains(outside), "expected far point to be outside circle")
}

func TestCircleBoundingBoxContainsCenter(t *testing.T) {
	c := Circle{IDValue: "c1", Center: Point{Lat: 10, Lon: 10}, RadiusM: 500}
	require.True(t, c.BoundingBox().Valid())
	assert.True(t, c.BoundingBox().Contains(c.Center))
}

func TestEdgeContainsAlongSegment(t *testing.T) {
	e := Edge{
		IDValue: "e1",
		A:       Point{Lat: 35.96, Lon: -83.92},
		B:       Point{Lat: 35.97, Lon: -83.92},
		WidthM:  20,
	}

	onLine := Point{Lat: 35.965, Lon: -83.92}
	assert.True(t, e.Contains(onLine))

	farAway := Point{Lat: 35.965, Lon: -83.80}
	assert.False(t, e.Contains(farAway))
}

func TestEdgeContainsClampsToEndpoints(t *testing.T) {
	e := Edge{
		IDValue: "e1",
		A:       Point{Lat: 35.96, Lon: -83.92},
		B:       Point{Lat: 35.97, Lon: -83.92},
		WidthM:  20,
	}

	// Beyond the B endpoint, but still within width of B itself.
	nearB := Point{Lat: 35.97004, Lon: -83.92}
	assert.True(t, e.Contains(nearB))
}

func TestEdgeIntersectsBounds(t *testing.T) {
	e := Edge{
		IDValue: "e1",
		A:       Point{Lat: 0, Lon: 0},
		B:       Point{Lat: 1, Lon: 1},
		WidthM:  10,
	}

	crossing := Bounds{SW: Point{Lat: 0.4, Lon: 0.4}, NE: Point{Lat: 0.6, Lon: 0.6}}
	disjoint := Bounds{SW: Point{Lat: 5, Lon: 5}, NE: Point{Lat: 6, Lon: 6}}

	assert.True(t, e.Intersects(crossing))
	assert.False(t, e.Intersects(disjoint))
}

func TestGridContainsAndIntersects(t *testing.T) {
	g := Grid{
		IDValue: "g1",
		Cell:    Bounds{SW: Point{Lat: 10, Lon: 10}, NE: Point{Lat: 11, Lon: 11}},
		Row:     0,
		Col:     0,
	}

	assert.True(t, g.Contains(Point{Lat: 10.5, Lon: 10.5}))
	assert.False(t, g.Contains(Point{Lat: 20, Lon: 20}))
	assert.True(t, g.Intersects(Bounds{SW: Point{Lat: 10.5, Lon: 10.5}, NE: Point{Lat: 12, Lon: 12}}))
	assert.False(t, g.Intersects(Bounds{SW: Point{Lat: 20, Lon: 20}, NE: Point{Lat: 21, Lon: 21}}))
}

func TestBoundsQuadrantsPartitionSpace(t *testing.T) {
	b := Bounds{SW: Point{Lat: 0, Lon: 0}, NE: Point{Lat: 2, Lon: 2}}
	nw, ne, sw, se := b.Quadrants()

	assert.True(t, nw.Contains(Point{Lat: 1.5, Lon: 0.5}))
	assert.True(t, ne.Contains(Point{Lat: 1.5, Lon: 1.5}))
	assert.True(t, sw.Contains(Point{Lat: 0.5, Lon: 0.5}))
	assert.True(t, se.Contains(Point{Lat: 0.5, Lon: 1.5}))
}
