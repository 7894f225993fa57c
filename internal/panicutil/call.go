// Package panicutil converts panics raised by user callbacks into errors.
package panicutil

import (
	"github.com/sourcegraph/conc/panics"
)

// Call runs f and returns the error it returns.
// If f panics, the panic is recovered and returned as *panics.ErrRecovered, with the stack
// trace of the panicking goroutine attached.
//
// runtime.Goexit is not intercepted and keeps unwinding the calling goroutine,
// so callers must release their resources with defer.
func Call(f func() error) (err error) {
	var catcher panics.Catcher
	catcher.Try(func() {
		err = f()
	})
	if r := catcher.Recovered(); r != nil {
		return r.AsError()
	}
	return err
}
