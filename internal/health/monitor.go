package health

import (
	"sync"
	"time"
)

// Monitor is the runner's single writer, read concurrently by a health
// endpoint. A mutex is enough here — the runner updates it at most once
// per consume-produce iteration, nowhere near a contention hot path.
type Monitor struct {
	mu     sync.RWMutex
	status Status
}

// NewMonitor returns a Monitor starting in the Booting state.
func NewMonitor() *Monitor {
	return &Monitor{status: Status{State: Booting, Healthy: false, Since: time.Now()}}
}

// Transition moves the monitor to state, recording the transition time
// and an optional message (e.g. a transport error causing a reconnect).
func (m *Monitor) Transition(state State, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.State = state
	m.status.Message = message
	m.status.Since = time.Now()
	m.status.Healthy = state == Consuming
}

// UpdateCounts refreshes the counters surfaced in Status without
// changing the lifecycle state.
func (m *Monitor) UpdateCounts(recv, send, filt uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.RecvCount = recv
	m.status.SendCount = send
	m.status.FiltCount = filt
}

// Status returns a copy of the current snapshot.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
