// Package claims carries the caller's identity through a request context.
package claims

import (
	"context"
	"errors"
)

const (
	RoleAdmin   = "ADMIN"
	RoleShopper = "SHOPPER"
)

type Claims struct {
	Subject string
	Role    string
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get returns the claims stored in ctx. Requests that passed no
// authentication step are shoppers.
func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{Role: RoleShopper}, errors.New("claim value missing from context")
	}
	return v, nil
}

func IsAdmin(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Role == RoleAdmin
}
