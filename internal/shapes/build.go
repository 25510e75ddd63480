package shapes

import (
	"github.com/dmccoystephenson/jpo-ppm/internal/geo"
	"github.com/dmccoystephenson/jpo-ppm/internal/quadtree"
)

// BuildGeofence loads path and inserts every parsed entity into a new
// quadtree rooted at bounds, in source order.
func BuildGeofence(path string, bounds geo.Bounds, opts ...quadtree.Option) (*quadtree.Tree, error) {
	entities, err := Load(path)
	if err != nil {
		return nil, err
	}

	tree := quadtree.New(bounds, opts...)
	for _, e := range entities {
		tree.Insert(e)
	}
	return tree, nil
}
