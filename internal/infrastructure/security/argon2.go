package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
)

// Argon2Params tune the Argon2id cost. Zero values are filled with defaults
// by the config layer before a hasher is built.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id cost.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024, // KiB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2Hasher stores identity secrets as PHC-encoded Argon2id strings
// ($argon2id$v=...$m=...,t=...,p=...$salt$key). The cost is recorded inside
// each hash, so Verify keeps working after the configured cost changes.
type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: params}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt,
		h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	var b strings.Builder
	fmt.Fprintf(&b, "$argon2id$v=%d$m=%d,t=%d,p=%d$", argon2.Version,
		h.params.Memory, h.params.Iterations, h.params.Parallelism)
	b.WriteString(base64.RawStdEncoding.EncodeToString(salt))
	b.WriteByte('$')
	b.WriteString(base64.RawStdEncoding.EncodeToString(key))
	return b.String(), nil
}

// Verify recomputes the key under the cost recorded in encoded and compares
// in constant time. A malformed hash verifies false rather than erroring:
// a corrupt stored secret must read as "wrong password".
func (h *Argon2Hasher) Verify(password, encoded string) bool {
	cost, salt, want, err := parsePHC(encoded)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt,
		cost.Iterations, cost.Memory, cost.Parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1
}

// parsePHC splits a $argon2id$ string into its recorded cost, salt and key.
// Salt and key lengths come from the decoded segments, not from the
// hasher's configuration.
func parsePHC(encoded string) (Argon2Params, []byte, []byte, error) {
	var cost Argon2Params
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return cost, nil, nil, fmt.Errorf("not an argon2id hash")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return cost, nil, nil, fmt.Errorf("parse version: %w", err)
	}
	if version != argon2.Version {
		return cost, nil, nil, fmt.Errorf("argon2 version %d not supported", version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&cost.Memory, &cost.Iterations, &cost.Parallelism); err != nil {
		return cost, nil, nil, fmt.Errorf("parse cost: %w", err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return cost, nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return cost, nil, nil, fmt.Errorf("decode key: %w", err)
	}
	cost.SaltLength = uint32(len(salt))
	cost.KeyLength = uint32(len(key))
	return cost, salt, key, nil
}

var _ ports.PasswordHasher = (*Argon2Hasher)(nil)
