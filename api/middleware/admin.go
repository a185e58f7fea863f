package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/irsalhamdi/online-store/api/web"
	"github.com/irsalhamdi/online-store/api/weberr"
	"github.com/irsalhamdi/online-store/core/claims"
	"golang.org/x/crypto/bcrypt"
)

// Admin lets through requests whose bearer token matches tokenHash (bcrypt)
// and marks them with admin claims. An empty hash disables the check.
func Admin(tokenHash string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		if tokenHash == "" {
			return handler
		}

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				return weberr.NotAuthorized(errors.New("missing bearer token"))
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				return weberr.NotAuthorized(errors.New("bearer token does not match"))
			}

			ctx = claims.Set(ctx, claims.Claims{Subject: "admin", Role: claims.RoleAdmin})
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
