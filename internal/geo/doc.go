// Package geo provides the geometric primitives the privacy filter builds
// on: points, axis-aligned bounds, and the three shape kinds (circle, edge,
// grid) that make up a geofence.
//
// Edge (capsule) distances use an equirectangular approximation centered
// on the segment; at geofence scale (single digit kilometers) the error is
// negligible. Circle containment and intersection use great-circle
// (haversine) distance instead.
package geo
