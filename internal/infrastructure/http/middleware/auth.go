package middleware

import (
	"net/http"
	"strings"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// AuthValidator verifies the bearer token and sets the identity in context
// (see AuthFromContext). Rejection is always 401: a present-but-invalid
// token proves nothing.
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeFailed(w, http.StatusUnauthorized, "not logged in")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		identityID, role, err := m.issuer.Verify(tokenString)
		if err != nil {
			writeFailed(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := WithAuth(r.Context(), identityID, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a subtree on strict role equality. It composes after
// AuthValidator: a missing identity here means the route was wired without
// authentication, which is treated as unauthenticated rather than allowed
// through. Mismatch is 403, a different failure than 401: the caller has a
// valid session and simply lacks privilege.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, got, ok := AuthFromContext(r.Context())
			if !ok {
				writeFailed(w, http.StatusUnauthorized, "not logged in")
				return
			}
			if got != role {
				writeFailed(w, http.StatusForbidden, "you do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
