package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/online-store/api/web"
)

// Deadline replaces the server-wide read and write deadlines of the
// connection with d from the start of the request. Routes that stream large
// bodies or wait on slow upstreams use it. A zero d leaves the server ones.
func Deadline(d time.Duration) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if d <= 0 {
				return handler(ctx, w, r)
			}

			until := time.Now().Add(d)
			rc := http.NewResponseController(w)
			if err := rc.SetReadDeadline(until); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return fmt.Errorf("setting read deadline: %w", err)
			}
			if err := rc.SetWriteDeadline(until); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return fmt.Errorf("setting write deadline: %w", err)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
