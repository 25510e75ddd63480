package filter

import (
	"github.com/dmccoystephenson/jpo-ppm/internal/bsm"
	"github.com/dmccoystephenson/jpo-ppm/internal/quadtree"
)

// Mode selects how geofence containment maps to a retain/suppress
// decision.
type Mode int

const (
	// Inclusive retains a message iff it falls inside at least one
	// geofence entity. This is the default.
	Inclusive Mode = iota
	// Exclusive retains a message iff it falls inside no geofence
	// entity — the geofence names a region to scrub, not to keep.
	Exclusive
)

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "inclusive", "":
		return Inclusive, true
	case "exclusive":
		return Exclusive, true
	default:
		return Inclusive, false
	}
}

// Default speed bounds, in meters per second (≈5 mph and ≈100 mph).
const (
	DefaultSpeedMin = 2.235
	DefaultSpeedMax = 44.7
)

// Policy holds the configured geofence and speed bounds a Document is
// evaluated against.
type Policy struct {
	Geofence *quadtree.Tree
	Mode     Mode
	SpeedMin float64
	SpeedMax float64
}

// NewPolicy builds a Policy with the default speed bounds.
func NewPolicy(geofence *quadtree.Tree, mode Mode) Policy {
	return Policy{
		Geofence: geofence,
		Mode:     mode,
		SpeedMin: DefaultSpeedMin,
		SpeedMax: DefaultSpeedMax,
	}
}

// Decide runs the suppression pipeline against doc, short-circuiting on
// the first failing predicate: identifier validity, required-field
// presence, speed bounds, then geofence containment.
func (p Policy) Decide(doc *bsm.Document) Verdict {
	if !doc.IDSet || !bsm.ValidID(doc.IDRaw) {
		return Suppress(ReasonInvalidID)
	}
	if !doc.HasRequiredFields() {
		return Suppress(ReasonMissingRequired)
	}
	if doc.SpeedMPS < p.SpeedMin || doc.SpeedMPS > p.SpeedMax {
		return Suppress(ReasonSpeedOutOfRange)
	}

	contained := len(p.Geofence.QueryPoint(doc.Position)) > 0
	switch p.Mode {
	case Exclusive:
		if contained {
			return Suppress(ReasonOutsideGeofence)
		}
	default:
		if !contained {
			return Suppress(ReasonOutsideGeofence)
		}
	}
	return Retain
}
