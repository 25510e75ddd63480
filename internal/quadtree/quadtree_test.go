package quadtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmccoystephenson/jpo-ppm/internal/geo"
)

func rootBounds() geo.Bounds {
	return geo.Bounds{SW: geo.Point{Lat: 35.9, Lon: -84.0}, NE: geo.Point{Lat: 36.0, Lon: -83.8}}
}

func TestQueryPointOutsideRootIsEmpty(t *testing.T) {
	tree := New(rootBounds())
	tree.Insert(geo.Circle{IDValue: "c1", Center: geo.Point{Lat: 35.96, Lon: -83.92}, RadiusM: 500})

	got := tree.QueryPoint(geo.Point{Lat: 50, Lon: 50})
	assert.Empty(t, got)
}

func TestQueryPointFindsContainingCircle(t *testing.T) {
	tree := New(rootBounds())
	c := geo.Circle{IDValue: "c1", Center: geo.Point{Lat: 35.9606, Lon: -83.9207}, RadiusM: 1000}
	tree.Insert(c)

	got := tree.QueryPoint(geo.Point{Lat: 35.9610, Lon: -83.9200})
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID())
}

// TestContainmentLaw checks that for every entity E and point p with
// E.Contains(p), QueryPoint(p) must contain E.
func TestContainmentLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := New(rootBounds(), WithLeafCapacity(2), WithMaxDepth(6))

	var shapes []geo.Entity
	for i := 0; i < 40; i++ {
		c := geo.Circle{
			IDValue: fmt.Sprintf("c%d", i),
			Center: geo.Point{
				Lat: 35.9 + rng.Float64()*0.1,
				Lon: -84.0 + rng.Float64()*0.2,
			},
			RadiusM: 100 + rng.Float64()*400,
		}
		shapes = append(shapes, c)
		tree.Insert(c)
	}

	for i := 0; i < 200; i++ {
		p := geo.Point{Lat: 35.9 + rng.Float64()*0.1, Lon: -84.0 + rng.Float64()*0.2}
		got := tree.QueryPoint(p)
		containing := map[string]bool{}
		for _, e := range got {
			containing[e.ID()] = true
		}
		for _, s := range shapes {
			if s.Contains(p) {
				assert.True(t, containing[s.ID()], "expected %s to contain %v and be returned by QueryPoint", s.ID(), p)
			}
		}
	}
}

// TestSoundness checks the complementary property: every entity
// QueryPoint returns must actually contain the query point (no false
// positives).
func TestSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := New(rootBounds(), WithLeafCapacity(2), WithMaxDepth(6))

	for i := 0; i < 40; i++ {
		tree.Insert(geo.Circle{
			IDValue: fmt.Sprintf("c%d", i),
			Center: geo.Point{
				Lat: 35.9 + rng.Float64()*0.1,
				Lon: -84.0 + rng.Float64()*0.2,
			},
			RadiusM: 100 + rng.Float64()*400,
		})
	}

	for i := 0; i < 200; i++ {
		p := geo.Point{Lat: 35.9 + rng.Float64()*0.1, Lon: -84.0 + rng.Float64()*0.2}
		for _, e := range tree.QueryPoint(p) {
			assert.True(t, e.Contains(p), "entity %s returned for %v but does not contain it", e.ID(), p)
		}
	}
}

func TestInsertCountsEveryEntityOnce(t *testing.T) {
	tree := New(rootBounds())
	for i := 0; i < 10; i++ {
		tree.Insert(geo.Circle{IDValue: fmt.Sprintf("c%d", i), Center: geo.Point{Lat: 35.96, Lon: -83.92}, RadiusM: 50})
	}
	assert.Equal(t, 10, tree.Len())
}

func TestInsertOutsideRootIsNoOp(t *testing.T) {
	tree := New(rootBounds())
	tree.Insert(geo.Circle{IDValue: "far", Center: geo.Point{Lat: 50, Lon: 50}, RadiusM: 10})
	assert.Empty(t, tree.QueryPoint(geo.Point{Lat: 50, Lon: 50}))
}
