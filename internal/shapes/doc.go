// Package shapes loads a geofence map file — a CSV file with one shape
// per line — into the geo.Entity values the quadtree indexes.
package shapes
