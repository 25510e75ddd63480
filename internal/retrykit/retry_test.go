package retrykit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilShutdownSucceedsEventually(t *testing.T) {
	ctx := context.Background()
	attempts := 0

	ok := UntilShutdown(ctx, Config{Delay: time.Millisecond}, func() bool {
		attempts++
		return attempts == 3
	})

	assert.True(t, ok)
	assert.Equal(t, 3, attempts)
}

func TestUntilShutdownStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	ok := UntilShutdown(ctx, Config{Delay: 5 * time.Millisecond}, func() bool {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return false
	})

	assert.False(t, ok)
	assert.GreaterOrEqual(t, attempts, 2)
}

func TestUntilShutdownDefaultsDelay(t *testing.T) {
	ctx := context.Background()
	calls := 0
	ok := UntilShutdown(ctx, Config{}, func() bool {
		calls++
		return true
	})
	assert.True(t, ok)
	assert.Equal(t, 1, calls)
}
