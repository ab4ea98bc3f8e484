package auth

import (
	"context"
	"strings"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Identity *domain.Identity
	Token    string
}

// Login verifies credentials and issues a session token. The role embedded
// in the token reflects the identity at login time.
type Login struct {
	identities ports.IdentityRepository
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
}

func NewLogin(identities ports.IdentityRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{identities: identities, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	identity, err := uc.identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if identity == nil || !uc.hasher.Verify(input.Password, identity.SecretHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(identity.ID, identity.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Identity: identity, Token: token}, nil
}
