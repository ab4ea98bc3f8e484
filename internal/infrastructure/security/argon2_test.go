package security

import "testing"

func TestHashVerify(t *testing.T) {
	h := NewArgon2Hasher(Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	encoded, err := h.Hash("Sup3rSecret!pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !h.Verify("Sup3rSecret!pass", encoded) {
		t.Error("correct password rejected")
	}
	if h.Verify("wrong-password", encoded) {
		t.Error("wrong password accepted")
	}
	if h.Verify("Sup3rSecret!pass", "not-an-encoded-hash") {
		t.Error("garbage hash accepted")
	}
}

func TestVerifyUsesCostRecordedInHash(t *testing.T) {
	old := NewArgon2Hasher(Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	encoded, err := old.Hash("Sup3rSecret!pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	// A hasher reconfigured with a higher cost must still verify hashes
	// produced under the old cost.
	upgraded := NewArgon2Hasher(Argon2Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32})
	if !upgraded.Verify("Sup3rSecret!pass", encoded) {
		t.Error("hash produced under an older cost rejected")
	}
}

func TestHashUniqueSalt(t *testing.T) {
	h := NewArgon2Hasher(DefaultArgon2Params())
	a, err := h.Hash("same-password-12!A")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("same-password-12!A")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ by salt")
	}
}
