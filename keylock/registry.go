package keylock

import "sync"

// Registry maps keys to the lock in effect for them.
// At most one lock is installed per key at any time. Registry is safe for concurrent use.
// The zero value is ready to use.
type Registry[K comparable] struct {
	mu    sync.RWMutex
	locks map[K]*Lock
}

// NewRegistry creates a new empty Registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{locks: map[K]*Lock{}}
}

// RegisterOrGet installs candidate for the key unless a lock is already installed.
// The check and the insertion are one atomic step with respect to every other call on the registry.
//
// The winner receives its own candidate and true; it is the loader and already holds the
// candidate's write side. Every other caller receives the installed lock and false.
// The candidate must come from NewLock.
func (r *Registry[K]) RegisterOrGet(key K, candidate *Lock) (*Lock, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.locks[key]; ok {
		return l, false
	}
	if r.locks == nil {
		r.locks = map[K]*Lock{}
	}
	r.locks[key] = candidate
	return candidate, true
}

// Get returns the lock installed for the key, if any.
func (r *Registry[K]) Get(key K) (*Lock, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.locks[key]
	return l, ok
}

// Contains reports whether a lock is installed for the key.
func (r *Registry[K]) Contains(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.locks[key]
	return ok
}

// Unregister removes the entry for the key only if l is the lock currently installed for it.
// It reports whether the entry was removed.
//
// A loader whose load did not produce a value unregisters its lock before releasing it,
// so that the next caller for the key starts a new load instead of following a stale lock.
func (r *Registry[K]) Unregister(key K, l *Lock) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if installed, ok := r.locks[key]; !ok || installed != l {
		return false
	}
	delete(r.locks, key)
	return true
}

// Len returns the number of installed locks.
func (r *Registry[K]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.locks)
}
