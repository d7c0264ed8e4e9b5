package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const resetTokenBytes = 20

// NewResetToken generates a password-reset token. It returns the cleartext
// token for delivery to the user and the hex sha256 digest for storage. Only
// the digest is ever persisted.
func NewResetToken() (cleartext, digest string, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generating reset token: %w", err)
	}
	cleartext = hex.EncodeToString(b)
	return cleartext, HashResetToken(cleartext), nil
}

// HashResetToken computes the stored form of a reset token. The digest is a
// plain sha256 so consuming a token is a single equality lookup; the token's
// own entropy makes a per-record salt unnecessary.
func HashResetToken(cleartext string) string {
	sum := sha256.Sum256([]byte(cleartext))
	return hex.EncodeToString(sum[:])
}
