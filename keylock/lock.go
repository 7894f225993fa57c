package keylock

import "sync"

// Lock is the read/write lock in effect for a single key.
// The loader holds the write side while the value is being loaded, and followers acquire
// the read side to wait for the load to finish.
type Lock struct {
	sync.RWMutex
}

// NewLock creates a new Lock whose write side is already held by the caller.
// The caller must call Unlock exactly once, whether or not the lock was installed in a Registry.
func NewLock() *Lock {
	l := &Lock{}
	l.Lock()
	return l
}
