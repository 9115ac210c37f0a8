// Package lock provides per-key locking for read-modify-write cycles on
// store documents. Every mutation reads a whole collection, changes it in
// memory and writes it back, so two writers on the same key must never
// interleave.
package lock

import (
	"context"
	"sync"
	"time"
)

// backoff is the polling interval while waiting for a held key.
const backoff = 2 * time.Millisecond

// KeyLock serializes writers per document key.
type KeyLock struct {
	locks sync.Map // map[string]*sync.Mutex
}

// NewKeyLock creates a new KeyLock instance.
func NewKeyLock() *KeyLock {
	return &KeyLock{}
}

// getLock retrieves or creates the mutex for the given key.
func (kl *KeyLock) getLock(key string) *sync.Mutex {
	if v, ok := kl.locks.Load(key); ok {
		return v.(*sync.Mutex)
	}
	actual, _ := kl.locks.LoadOrStore(key, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// TryLock attempts to acquire the lock without blocking.
func (kl *KeyLock) TryLock(key string) bool {
	return kl.getLock(key).TryLock()
}

// LockContext acquires the lock for key, polling until ctx is done. On
// cancellation it returns ctx.Err() and the lock is not held.
func (kl *KeyLock) LockContext(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(backoff)
	defer timer.Stop()
	for {
		if kl.TryLock(key) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			timer.Reset(backoff)
		}
	}
}

// Unlock releases the lock for a key.
func (kl *KeyLock) Unlock(key string) {
	if v, ok := kl.locks.Load(key); ok {
		v.(*sync.Mutex).Unlock()
	}
}
