// Package ctxsync provides context-aware waiting on read/write locks.
package ctxsync

import (
	"context"
)

// RWLocker is the read side of a read/write lock, such as *sync.RWMutex.
type RWLocker interface {
	RLock()
	RUnlock()
	TryRLock() bool
}

// CtxRLocker wraps an RWLocker so that waiting for its read side can be abandoned.
type CtxRLocker struct {
	RWLocker
}

// RLockCtx acquires the read side, or returns the context error if ctx is done first.
// On cancellation the pending acquisition completes in the background and is released
// immediately, so the writer is never blocked by an abandoned reader.
func (l *CtxRLocker) RLockCtx(ctx context.Context) error {
	if l.TryRLock() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	acquired := make(chan struct{})
	go func() {
		defer close(acquired)
		l.RWLocker.RLock()
	}()

	select {
	case <-acquired:
		return nil
	case <-ctx.Done():
		go func() {
			<-acquired
			l.RWLocker.RUnlock()
		}()
		return ctx.Err()
	}
}
