package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/irsalhamdi/online-store/api/web"
	"github.com/irsalhamdi/online-store/api/weberr"
)

// Panics converts a panic into an error carrying the stack trace, so the
// errors middleware can log it and answer with a 500.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = weberr.Wrap(
						fmt.Errorf("panic: %v", rec),
						weberr.WithFields(map[string]any{"trace": string(debug.Stack())}),
					)
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
