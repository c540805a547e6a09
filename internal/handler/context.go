package handlers

import (
	"context"
	"net/http"

	"photofeed/internal/models"
)

type principalKey struct{}

// WithPrincipal stores the authenticated caller in ctx.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller, if any.
func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*models.Principal)
	return p, ok && p != nil
}

// requirePrincipal writes 401 when the request is anonymous.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (*models.Principal, bool) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
		return nil, false
	}
	return p, true
}
