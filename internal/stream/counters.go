package stream

// Counters are the runner's monotonic message/byte tallies. They are
// updated from a single goroutine — the runner's own loop — so no
// synchronization is needed here; Snapshot exists for the rare case a
// health endpoint wants a consistent copy taken between iterations.
type Counters struct {
	RecvCount uint64
	RecvBytes uint64
	SendCount uint64
	SendBytes uint64
	FiltCount uint64
	FiltBytes uint64
}

// Snapshot returns a copy of c.
func (c Counters) Snapshot() Counters { return c }
