package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/online-store/api/web"
)

// LoadAndSave loads the caller's session before the handler runs and
// commits it, setting the cookie, once the handler is done.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			})
			session.LoadAndSave(next).ServeHTTP(w, r.WithContext(ctx))

			return err
		}
		return h
	}
	return m
}
