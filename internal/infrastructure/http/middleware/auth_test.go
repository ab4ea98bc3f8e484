package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	infraauth "github.com/yusuufashraaf/TMS-backend/internal/infrastructure/auth"
)

func guardedChain(t *testing.T, issuer *infraauth.TokenIssuer, required domain.Role) (http.Handler, *bool) {
	t.Helper()
	reached := false
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	if required != "" {
		handler = RequireRole(required)(handler)
	}
	return NewAuthValidator(issuer).Handler(handler), &reached
}

func TestMissingTokenIs401(t *testing.T) {
	issuer := infraauth.NewTokenIssuer([]byte("s"), "tms", time.Hour)
	handler, reached := guardedChain(t, issuer, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if *reached {
		t.Error("handler reached without credentials")
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["status"] != "failed" {
		t.Errorf("status field = %q, want failed", body["status"])
	}
}

func TestInvalidTokenIs401(t *testing.T) {
	issuer := infraauth.NewTokenIssuer([]byte("s"), "tms", time.Hour)
	handler, reached := guardedChain(t, issuer, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if *reached {
		t.Error("handler reached with invalid token")
	}
}

func TestValidTokenReachesHandlerWithContext(t *testing.T) {
	issuer := infraauth.NewTokenIssuer([]byte("s"), "tms", time.Hour)
	id := domain.NewIdentityID(uuid.New())
	token, err := issuer.Issue(id, domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotID domain.IdentityID
	var gotRole domain.Role
	handler := NewAuthValidator(issuer).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		gotID, gotRole, ok = AuthFromContext(r.Context())
		if !ok {
			t.Error("auth missing from context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != id || gotRole != domain.RoleUser {
		t.Errorf("context identity = %s/%s, want %s/User", gotID, gotRole, id)
	}
}

func TestUserRoleAgainstAdminRouteIs403(t *testing.T) {
	issuer := infraauth.NewTokenIssuer([]byte("s"), "tms", time.Hour)
	token, err := issuer.Issue(domain.NewIdentityID(uuid.New()), domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	handler, reached := guardedChain(t, issuer, domain.RoleAdmin)

	// Valid session, wrong role: always 403, never 404 or 200, regardless
	// of whether the target resource exists.
	for _, path := range []string{"/exists", "/definitely-missing"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("GET %s status = %d, want 403", path, rec.Code)
		}
	}
	if *reached {
		t.Error("handler reached with insufficient role")
	}
}

func TestAdminDoesNotSatisfyUserCheck(t *testing.T) {
	issuer := infraauth.NewTokenIssuer([]byte("s"), "tms", time.Hour)
	token, err := issuer.Issue(domain.NewIdentityID(uuid.New()), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	handler, _ := guardedChain(t, issuer, domain.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Strict equality: no implicit hierarchy.
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestExpiredTokenIs401(t *testing.T) {
	issuer := infraauth.NewTokenIssuer([]byte("s"), "tms", -time.Minute)
	token, err := issuer.Issue(domain.NewIdentityID(uuid.New()), domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	handler, reached := guardedChain(t, infraauth.NewTokenIssuer([]byte("s"), "tms", time.Hour), "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if *reached {
		t.Error("handler reached with expired token")
	}
}
