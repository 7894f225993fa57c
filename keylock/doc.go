// Package keylock provides a registry of per-key read/write locks.
//
// A Registry maps a key to the lock currently "in effect" for that key. The first caller that
// finds a key unregistered installs its own write-held Lock with RegisterOrGet and becomes the
// loader for that key. Every other concurrent caller receives the already installed Lock and
// waits on its read side until the loader releases the write side.
//
// The registry mutex only guards the map itself. It is never held while a key's lock is held
// for loading, so callers working on different keys do not block each other.
package keylock
