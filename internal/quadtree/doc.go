// Package quadtree implements a point-region quadtree over geofence
// entities (github.com/dmccoystephenson/jpo-ppm/internal/geo). It answers
// one question on the hot path: which geofence shapes, if any, contain a
// given vehicle position. The tree is built once at startup from the
// shape loader's output and is never mutated afterward, so queries need
// no locking.
package quadtree
