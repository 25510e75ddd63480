package bsm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// object is a JSON object decoded field-by-field with its key order
// preserved and each value kept as raw, undecoded bytes. Re-marshaling
// an object that had none of its values replaced reproduces the
// original bytes (modulo whitespace normalization performed by the
// decoder on the way in), which is what makes redaction idempotent and
// shape-preserving: only the keys a caller explicitly replaces change.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func newObject() *object {
	return &object{values: make(map[string]json.RawMessage)}
}

// parseObject decodes data as a single JSON object, walking its tokens
// one key at a time rather than unmarshaling into a concrete Go type.
func parseObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("bsm: decode object: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("bsm: expected object, got %v", tok)
	}

	obj := newObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("bsm: decode object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("bsm: object key is not a string: %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("bsm: decode value for %q: %w", key, err)
		}

		if _, exists := obj.values[key]; !exists {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = raw
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("bsm: closing object delimiter: %w", err)
	}
	return obj, nil
}

// get returns the raw bytes for key and whether it was present.
func (o *object) get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

// set replaces (or appends, preserving append-order for new keys) the
// raw bytes stored for key.
func (o *object) set(key string, raw json.RawMessage) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
}

// marshal writes the object back out in its original key order.
func (o *object) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		buf.Write(o.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
