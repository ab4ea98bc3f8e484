package middleware

import (
	"context"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

type contextKey string

const authContextKey contextKey = "auth"

type authInfo struct {
	identityID domain.IdentityID
	role       domain.Role
}

// WithAuth injects the authenticated identity into the context.
func WithAuth(ctx context.Context, identityID domain.IdentityID, role domain.Role) context.Context {
	return context.WithValue(ctx, authContextKey, authInfo{identityID: identityID, role: role})
}

// AuthFromContext returns the authenticated identity, or false when the
// request never passed the guard.
func AuthFromContext(ctx context.Context) (domain.IdentityID, domain.Role, bool) {
	v := ctx.Value(authContextKey)
	if v == nil {
		return domain.IdentityID{}, "", false
	}
	info, ok := v.(authInfo)
	if !ok {
		return domain.IdentityID{}, "", false
	}
	return info.identityID, info.role, true
}
