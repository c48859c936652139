package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// bcrypt silently ignores input beyond 72 bytes; truncate explicitly so the
// same prefix is used at hash and verify time.
const maxPasswordBytes = 72

// Hasher performs one-way salted password hashing and verification.
type Hasher struct{}

// NewHasher creates a new password hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash generates a salted bcrypt digest for the given password. The salt is
// random per call and embedded in the digest.
func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(truncate(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. Malformed digests verify
// false rather than returning an error.
func (h *Hasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(password)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
