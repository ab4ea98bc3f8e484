package ports

import "github.com/yusuufashraaf/TMS-backend/internal/domain"

// PasswordHasher hashes and verifies user secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// TokenIssuer issues and verifies signed, time-bounded session tokens. Verify
// fails closed: any malformed, mis-signed or expired token is an error, never
// a guest identity. The role is embedded at issue time, so role changes take
// effect on re-issue only.
type TokenIssuer interface {
	Issue(identityID domain.IdentityID, role domain.Role) (string, error)
	Verify(token string) (domain.IdentityID, domain.Role, error)
}
