// Package metrics exposes the stream runner's counters as Prometheus
// collectors: messages and bytes received, sent, and filtered, broken
// out per suppression reason.
package metrics
