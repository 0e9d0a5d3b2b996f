package mcp

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// authTokenKey carries the caller's bearer token through the request context.
const authTokenKey contextKey = "authToken"

// WithAuthToken returns a context carrying the presented bearer token.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

// AuthTokenFromContext returns the bearer token presented by the caller, or
// an empty string when none was sent.
func AuthTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(authTokenKey).(string)
	return token
}

// httpContextFunc lifts the bearer token out of the Authorization header so
// tool handlers can authenticate the caller. The scheme comparison is
// case-insensitive per RFC 7235.
func httpContextFunc(ctx context.Context, r *http.Request) context.Context {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ctx
	}

	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return WithAuthToken(ctx, strings.TrimSpace(header[len(prefix):]))
	}
	return ctx
}
