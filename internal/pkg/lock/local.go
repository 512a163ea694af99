package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalLocker is an in-process Locker for single-replica deployments.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localLease
	clock func() time.Time
}

type localLease struct {
	token   string
	expires time.Time
}

// NewLocalLocker creates a LocalLocker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localLease), clock: time.Now}
}

// TryLock implements Locker.
func (l *LocalLocker) TryLock(_ context.Context, key string, ttl time.Duration) (Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if lease, ok := l.held[key]; ok && now.Before(lease.expires) {
		return nil, ErrNotAcquired
	}

	token := uuid.NewString()
	l.held[key] = localLease{token: token, expires: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if lease, ok := l.held[key]; ok && lease.token == token {
			delete(l.held, key)
		}
		return nil
	}, nil
}
