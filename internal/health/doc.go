// Package health tracks the stream runner's lifecycle state — Booting,
// Consuming, or Stopped — and renders it as a Status a supervisor or
// liveness probe can query.
package health
