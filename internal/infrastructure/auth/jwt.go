package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// Verification failures, distinguished for callers that report them. All of
// them mean the same thing to the guard: no identity.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
)

// TokenIssuer implements ports.TokenIssuer with HS256 and a process-wide
// secret key.
type TokenIssuer struct {
	secret []byte
	issuer string
	expiry time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// NewTokenIssuer creates a token issuer. expiry is the fixed horizon stamped
// on every issued token.
func NewTokenIssuer(secret []byte, issuer string, expiry time.Duration) *TokenIssuer {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &TokenIssuer{secret: secret, issuer: issuer, expiry: expiry}
}

// Issue embeds the identity id and role, stamps issuance and expiry, and
// signs. No side effects beyond computation.
func (t *TokenIssuer) Issue(identityID domain.IdentityID, role domain.Role) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   identityID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		Role: role.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify recomputes the signature and checks expiry. Unrecognized role values
// are rejected here, not at use time.
func (t *TokenIssuer) Verify(tokenString string) (domain.IdentityID, domain.Role, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return domain.IdentityID{}, "", ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.IdentityID{}, "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.IdentityID{}, "", ErrTokenSignatureInvalid
		}
		return domain.IdentityID{}, "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return domain.IdentityID{}, "", ErrTokenMalformed
	}
	identityID, err := domain.ParseIdentityID(claims.Subject)
	if err != nil {
		return domain.IdentityID{}, "", ErrTokenMalformed
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.IdentityID{}, "", fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return identityID, role, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
