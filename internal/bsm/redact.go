package bsm

import "encoding/json"

var nullValue = json.RawMessage("null")

// Redact nulls out the named fields of payload.data (e.g. "partII",
// "vehSafetyExt") and returns the re-serialized document. Fields not
// present are silently skipped. Redaction only ever touches payload.data
// siblings, never coreData, and never changes the document's top-level
// shape: every key that was present stays present, in its original
// order, with at most its value swapped for JSON null.
func (d *Document) Redact(fields []string) ([]byte, error) {
	if d.hasData {
		for _, f := range fields {
			if _, ok := d.data.get(f); ok {
				d.data.set(f, nullValue)
			}
		}
		dataBytes, err := d.data.marshal()
		if err != nil {
			return nil, err
		}
		d.payload.set("data", dataBytes)
	}

	if d.hasPayload {
		payloadBytes, err := d.payload.marshal()
		if err != nil {
			return nil, err
		}
		d.root.set("payload", payloadBytes)
	}

	return d.root.marshal()
}

// Bytes re-serializes the document without redacting anything, useful
// for a pass-through when no fields are configured for redaction.
func (d *Document) Bytes() ([]byte, error) {
	return d.Redact(nil)
}
