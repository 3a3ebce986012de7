package middlewares

import (
	"net/http"
	"runtime"

	"github.com/dmitrymomot/filevault/internal"
)

// DefaultStackSize caps the captured stack trace.
const DefaultStackSize = 4096

// Recover converts a panic into a PanicError, logged with its stack at ERROR.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recover() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				stack := make([]byte, DefaultStackSize)
				stack = stack[:runtime.Stack(stack, false)]
				c.LogError("panic recovered", "panic", r, "stack", string(stack))

				err = &PanicError{Value: r, Stack: stack}
			}()

			return next(c)
		}
	}
}
