package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := NewHasher()

	digest, err := hasher.Hash("Str0ng!Pass")
	assert.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "Str0ng!Pass", digest)

	assert.True(t, hasher.Verify("Str0ng!Pass", digest))
	assert.False(t, hasher.Verify("Str0ng!Pass2", digest))
	assert.False(t, hasher.Verify("", digest))
}

func TestHasher_SaltIsRandomPerCall(t *testing.T) {
	hasher := NewHasher()

	first, err := hasher.Hash("Str0ng!Pass")
	assert.NoError(t, err)
	second, err := hasher.Hash("Str0ng!Pass")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Str0ng!Pass", first))
	assert.True(t, hasher.Verify("Str0ng!Pass", second))
}

func TestHasher_TruncatesAt72Bytes(t *testing.T) {
	hasher := NewHasher()

	prefix := strings.Repeat("a", 72)
	digest, err := hasher.Hash(prefix + "tail-that-is-ignored")
	assert.NoError(t, err)

	// Same 72-byte prefix verifies regardless of what follows.
	assert.True(t, hasher.Verify(prefix, digest))
	assert.True(t, hasher.Verify(prefix+"different-tail", digest))

	// A change within the first 72 bytes does not.
	assert.False(t, hasher.Verify(strings.Repeat("b", 72), digest))
}

func TestHasher_MalformedDigest(t *testing.T) {
	hasher := NewHasher()

	assert.False(t, hasher.Verify("Str0ng!Pass", ""))
	assert.False(t, hasher.Verify("Str0ng!Pass", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("Str0ng!Pass", "$2a$10$tooshort"))
}
