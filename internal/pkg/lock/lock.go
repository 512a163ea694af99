// Package lock provides named, expiring mutual exclusion for background jobs.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the lock is held by someone else.
var ErrNotAcquired = errors.New("lock: already held")

// Unlock releases a held lock. It is safe to call once.
type Unlock func(ctx context.Context) error

// Locker hands out named locks that expire after ttl if never released.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}
