package bsm

import (
	"encoding/json"
	"fmt"

	"github.com/dmccoystephenson/jpo-ppm/internal/geo"
)

// Decode parses raw as a Basic Safety Message envelope: a top-level
// object carrying a "payload" object, whose "data" object carries the
// "coreData" object the filter pipeline reads from, alongside sibling
// fields like "partII" and "vehSafetyExt" that travel untouched unless
// named in a redaction list.
func Decode(raw []byte) (*Document, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	doc := &Document{root: root}

	payloadRaw, ok := root.get("payload")
	if !ok {
		return doc, nil
	}
	doc.hasPayload = true
	payload, err := parseObject(payloadRaw)
	if err != nil {
		return nil, fmt.Errorf("bsm: payload: %w", err)
	}
	doc.payload = payload

	dataRaw, ok := payload.get("data")
	if !ok {
		return doc, nil
	}
	doc.hasData = true
	data, err := parseObject(dataRaw)
	if err != nil {
		return nil, fmt.Errorf("bsm: payload.data: %w", err)
	}
	doc.data = data

	coreRaw, ok := data.get("coreData")
	if !ok {
		return doc, nil
	}
	doc.hasCore = true
	core, err := parseObject(coreRaw)
	if err != nil {
		return nil, fmt.Errorf("bsm: payload.data.coreData: %w", err)
	}
	doc.core = core

	if err := decodeCoreFields(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeCoreFields(doc *Document) error {
	core := doc.core

	if raw, ok := core.get("id"); ok {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("bsm: coreData.id: %w", err)
		}
		doc.IDSet = true
		doc.IDRaw = id
	}

	if raw, ok := core.get("secMark"); ok {
		var secMark uint16
		if err := json.Unmarshal(raw, &secMark); err != nil {
			return fmt.Errorf("bsm: coreData.secMark: %w", err)
		}
		doc.SecMarkSet = true
		doc.SecMark = secMark
		doc.SecMarkAvail = secMark != SentinelSecMark
	}

	latRaw, hasLat := core.get("lat")
	longRaw, hasLong := core.get("long")
	if hasLat && hasLong {
		var lat, long int32
		if err := json.Unmarshal(latRaw, &lat); err != nil {
			return fmt.Errorf("bsm: coreData.lat: %w", err)
		}
		if err := json.Unmarshal(longRaw, &long); err != nil {
			return fmt.Errorf("bsm: coreData.long: %w", err)
		}
		doc.PositionSet = true
		if lat != SentinelCoordinate && long != SentinelCoordinate {
			doc.PositionAvail = true
			doc.Position = geo.Point{
				Lat: float64(lat) * CoordinateScale,
				Lon: float64(long) * CoordinateScale,
			}
		}
	}

	if raw, ok := core.get("speed"); ok {
		var speed uint16
		if err := json.Unmarshal(raw, &speed); err != nil {
			return fmt.Errorf("bsm: coreData.speed: %w", err)
		}
		doc.SpeedSet = true
		if speed != SentinelSpeedRaw {
			doc.SpeedAvail = true
			doc.SpeedMPS = float64(speed) * SpeedScale
		}
	}

	if raw, ok := core.get("heading"); ok {
		var heading uint16
		if err := json.Unmarshal(raw, &heading); err != nil {
			return fmt.Errorf("bsm: coreData.heading: %w", err)
		}
		doc.HeadingSet = true
		if heading != SentinelHeadingRaw {
			doc.HeadingAvail = true
			doc.HeadingDeg = float64(heading) * HeadingScale
		}
	}

	return nil
}
