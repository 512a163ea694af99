package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerExclusive(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlock, err := l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)

	_, err = l.TryLock(ctx, "sweep", time.Minute)
	assert.ErrorIs(t, err, ErrNotAcquired)

	other, err := l.TryLock(ctx, "other", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, unlock(ctx))
	again, err := l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestLocalLockerExpiry(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return now }
	ctx := context.Background()

	stale, err := l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	fresh, err := l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)

	// Releasing the expired lease must not free the new holder.
	require.NoError(t, stale(ctx))
	_, err = l.TryLock(ctx, "sweep", time.Minute)
	assert.ErrorIs(t, err, ErrNotAcquired)
	require.NoError(t, fresh(ctx))
}
