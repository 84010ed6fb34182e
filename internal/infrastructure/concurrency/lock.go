// Package concurrency provides the low-level synchronization primitives the
// message bus is built on: a try-acquire mutex, a bounded blocking queue,
// and goroutine identity.
package concurrency

import "sync"

// Lock is a mutual-exclusion lock that additionally exposes a non-blocking
// acquire attempt and a locked-state query, mirroring the small surface the
// dispatcher and queue need on top of sync.Mutex.
type Lock struct {
	mu     sync.Mutex
	locked bool
	guard  sync.Mutex // protects the locked flag independent of mu's own state
}

// NewLock returns an unlocked Lock.
func NewLock() *Lock {
	return &Lock{}
}

// Acquire blocks until the lock is held by the caller.
func (l *Lock) Acquire() {
	l.mu.Lock()
	l.setLocked(true)
}

// TryAcquire attempts to acquire the lock without blocking. It reports
// whether the lock was acquired.
func (l *Lock) TryAcquire() bool {
	if l.mu.TryLock() {
		l.setLocked(true)
		return true
	}
	return false
}

// Release releases the lock. Releasing a lock not held by the caller is a
// programming error, consistent with sync.Mutex.
func (l *Lock) Release() {
	l.setLocked(false)
	l.mu.Unlock()
}

// Lock acquires the lock. It satisfies sync.Locker so a Lock can back a
// sync.Cond directly.
func (l *Lock) Lock() {
	l.Acquire()
}

// Unlock releases the lock. It satisfies sync.Locker so a Lock can back a
// sync.Cond directly.
func (l *Lock) Unlock() {
	l.Release()
}

// Locked reports whether the lock is currently held by some goroutine. The
// result is inherently racy with respect to concurrent Acquire/Release
// calls and is intended for diagnostics and tests, not for synchronization
// decisions.
func (l *Lock) Locked() bool {
	l.guard.Lock()
	defer l.guard.Unlock()
	return l.locked
}

func (l *Lock) setLocked(v bool) {
	l.guard.Lock()
	l.locked = v
	l.guard.Unlock()
}
