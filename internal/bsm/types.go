package bsm

import "github.com/dmccoystephenson/jpo-ppm/internal/geo"

// Raw-unit sentinel values and scale factors for the coreData fields
// carried inside a Basic Safety Message, per the connected-vehicle wire
// encoding: coordinates are signed tenths-of-a-microdegree integers,
// speed is in units of 0.02 m/s, and heading is in units of 0.0125
// degrees.
const (
	SentinelCoordinate int32  = 0x7FFFFFFF
	SentinelSpeedRaw   uint16 = 8191
	SentinelHeadingRaw uint16 = 28800
	SentinelSecMark    uint16 = 65535

	CoordinateScale = 1e-7
	SpeedScale      = 0.02
	HeadingScale    = 0.0125
)

// Document is a Basic Safety Message decoded only as deeply as needed
// to run the filter pipeline. Everything it did not need to interpret
// is retained as opaque bytes so it can be re-emitted unchanged.
type Document struct {
	root    *object
	payload *object
	data    *object
	core    *object

	hasPayload bool
	hasData    bool
	hasCore    bool

	IDRaw string
	IDSet bool

	SecMarkSet   bool
	SecMarkAvail bool
	SecMark      uint16

	PositionSet   bool
	PositionAvail bool
	Position      geo.Point

	SpeedSet   bool
	SpeedAvail bool
	SpeedMPS   float64

	HeadingSet   bool
	HeadingAvail bool
	HeadingDeg   float64
}

// HasRequiredFields reports whether position, secmark, and speed were
// all present and carried usable (non-sentinel) values.
func (d *Document) HasRequiredFields() bool {
	return d.PositionSet && d.PositionAvail &&
		d.SecMarkSet && d.SecMarkAvail &&
		d.SpeedSet && d.SpeedAvail
}
