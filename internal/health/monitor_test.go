package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorStartsBootingAndUnhealthy(t *testing.T) {
	m := NewMonitor()
	assert.Equal(t, Booting, m.Status().State)
	assert.False(t, m.Status().IsHealthy())
}

func TestMonitorTransitionToConsumingIsHealthy(t *testing.T) {
	m := NewMonitor()
	m.Transition(Consuming, "")
	assert.True(t, m.Status().IsHealthy())
}

func TestMonitorUpdateCountsPreservesState(t *testing.T) {
	m := NewMonitor()
	m.Transition(Consuming, "")
	m.UpdateCounts(10, 8, 2)

	status := m.Status()
	assert.Equal(t, Consuming, status.State)
	assert.Equal(t, uint64(10), status.RecvCount)
	assert.Equal(t, uint64(8), status.SendCount)
	assert.Equal(t, uint64(2), status.FiltCount)
}

func TestMonitorTransitionToStoppedIsUnhealthy(t *testing.T) {
	m := NewMonitor()
	m.Transition(Consuming, "")
	m.Transition(Stopped, "shutdown requested")
	assert.False(t, m.Status().IsHealthy())
}
