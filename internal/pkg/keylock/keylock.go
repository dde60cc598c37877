// Package keylock serializes work per string key.
//
// A lock is created lazily the first time a key is seen and released from the
// table once nobody holds or waits on it, so the table does not grow with the
// number of distinct entities and customers ever touched.
//
// Example:
//
//	locks := keylock.New()
//	unlock, err := locks.Lock(ctx, "customer:C1")
//	if err != nil {
//	    return err
//	}
//	defer unlock()
package keylock

import (
	"context"
	"sync"

	"farmdesk/internal/pkg/errs"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// Locker hands out one mutual-exclusion slot per key.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New creates an empty Locker.
func New() *Locker {
	return &Locker{
		locks: make(map[string]*entry),
	}
}

// Lock blocks until the key is free or ctx is done. On success the returned
// func releases the key and must be called exactly once.
// An expired deadline is reported as errs.ErrTimeout.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquireEntry(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(key, e)
		return nil, errs.FromContext("lock "+key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.releaseEntry(key, e)
		})
	}, nil
}

// Len reports how many keys are currently held or awaited.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *Locker) acquireEntry(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) releaseEntry(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
