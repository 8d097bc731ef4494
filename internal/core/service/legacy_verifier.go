package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// LegacyVerifier checks plaintext passwords against the hashing scheme of
// the superseded member table. Stored values have the form
//
//	<salt>:<hex digest>
//
// where digest = SHA-256(salt || plaintext) and the salt participates as
// its literal string, matching how the old PHP layer concatenated before
// hashing. Any deviation from this construction locks out every legacy
// account, so the scheme is pinned by known-vector tests.
//
// The verifier is stateless and performs no I/O.
type LegacyVerifier struct{}

// Verify reports whether plaintext matches storedHash. Malformed stored
// values never verify.
func (LegacyVerifier) Verify(plaintext, storedHash string) bool {
	salt, want, ok := strings.Cut(storedHash, ":")
	if !ok || want == "" {
		return false
	}

	sum := sha256.Sum256([]byte(salt + plaintext))
	got := hex.EncodeToString(sum[:])

	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// LegacyHash produces a stored hash in the legacy format. The core never
// writes legacy credentials; this exists for fixtures and tests.
func LegacyHash(salt, plaintext string) string {
	sum := sha256.Sum256([]byte(salt + plaintext))
	return salt + ":" + hex.EncodeToString(sum[:])
}
