package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return now }

	require.NoError(t, cb.Allow())
	cb.Record(false)
	require.NoError(t, cb.Allow())
	cb.Record(true)
	assert.Equal(t, CBClosed, cb.State(), "a success resets the count")

	for i := 0; i < 2; i++ {
		require.NoError(t, cb.Allow())
		cb.Record(false)
	}
	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen)

	now = now.Add(time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Allow(), "one probe")
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen, "only one probe at a time")

	cb.Record(false)
	assert.Equal(t, CBOpen, cb.State(), "failed probe reopens")

	now = now.Add(time.Minute)
	require.NoError(t, cb.Allow())
	cb.Record(true)
	assert.Equal(t, CBClosed, cb.State())
}
