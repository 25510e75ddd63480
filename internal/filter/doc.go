// Package filter composes the geofence, speed, and identifier predicates
// that decide whether a Basic Safety Message is retained, and if not,
// why it was suppressed.
package filter
