// Package keylock provides per-key mutual exclusion for dynamic string
// keys. Each key gets its own lock, so callers contending for one key
// never block callers working on another.
package keylock

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Locker hands out one lock per key, created on first use and removed
// again once no caller references it. Locks are weighted-1 semaphores,
// so waiting is cooperative and honors context cancellation: a waiter
// whose request is abandoned steps out of the queue without leaking
// the lock.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lock
}

type lock struct {
	sem  *semaphore.Weighted
	refs int
}

// New returns an empty Locker.
func New() *Locker {
	return &Locker{
		locks: make(map[string]*lock),
	}
}

// Acquire blocks until the lock for key is held or ctx is done.
// On success it returns a release function, which is safe to call more
// than once. On context error nothing is held and no cleanup is needed.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &lock{sem: semaphore.NewWeighted(1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	if err := e.sem.Acquire(ctx, 1); err != nil {
		l.unref(key, e)
		return nil, err
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			e.sem.Release(1)
			l.unref(key, e)
		})
	}
	return release, nil
}

// WithLock runs fn while holding the lock for key.
// The lock is released on every exit path, including a panic in fn.
func (l *Locker) WithLock(ctx context.Context, key string, fn func() error) error {
	release, err := l.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func (l *Locker) unref(key string, e *lock) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

// size reports the number of live per-key locks. Test helper.
func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
