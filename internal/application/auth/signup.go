package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

type SignupInput struct {
	DisplayName string
	Email       string
	Password    string
	Role        domain.Role
}

type SignupResult struct {
	Identity *domain.Identity
	Token    string
}

// Signup creates an identity and issues its first session token.
type Signup struct {
	identities ports.IdentityRepository
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
}

func NewSignup(identities ports.IdentityRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Signup {
	return &Signup{identities: identities, hasher: hasher, issuer: issuer}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := uc.identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	now := time.Now()
	identity := &domain.Identity{
		ID:          domain.NewIdentityID(uuid.New()),
		DisplayName: input.DisplayName,
		Email:       email,
		SecretHash:  hash,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.identities.Create(ctx, identity); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(identity.ID, identity.Role)
	if err != nil {
		return nil, err
	}
	return &SignupResult{Identity: identity, Token: token}, nil
}
