// Package bsm decodes Basic Safety Message JSON documents far enough to
// evaluate a privacy filter against them, without paying for a full
// unmarshal into a Go struct. A Document retains the raw bytes of every
// top-level field it did not need to interpret, so a retained message
// can be re-emitted byte-for-byte except for fields the configuration
// asked to redact.
package bsm
