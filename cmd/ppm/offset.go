package main

import (
	"strconv"

	kafka "github.com/segmentio/kafka-go"
)

// startOffset maps the configured offset string to a kafka-go start
// offset: "beginning" and "end" map to its named sentinels, "stored" (no
// group-commit tracking in kafka-go's simple Reader) falls back to
// beginning, and anything else is parsed as an explicit integer offset.
func startOffset(s string) int64 {
	switch s {
	case "", "beginning":
		return kafka.FirstOffset
	case "end":
		return kafka.LastOffset
	case "stored":
		return kafka.FirstOffset
	default:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return kafka.FirstOffset
	}
}
