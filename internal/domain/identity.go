package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IdentityID is a value object for user identity.
type IdentityID struct{ uuid.UUID }

// NewIdentityID creates a new IdentityID from uuid.
func NewIdentityID(id uuid.UUID) IdentityID { return IdentityID{UUID: id} }

// ParseIdentityID parses the canonical string form.
func ParseIdentityID(s string) (IdentityID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return IdentityID{}, err
	}
	return IdentityID{UUID: id}, nil
}

// String returns the canonical string form.
func (i IdentityID) String() string { return i.UUID.String() }

// Role is a closed enumeration. There is no hierarchy: RoleAdmin does not
// satisfy a RoleUser check and vice versa.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }

// Identity is an authenticated principal. SecretHash is internal only and
// must never appear in any outbound representation.
type Identity struct {
	ID          IdentityID
	DisplayName string
	Email       string // stored lowercase; unique
	SecretHash  string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
