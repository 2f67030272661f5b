package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := BcryptHasher{}

	t.Run("hash and compare ok", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)
		require.NotEqual(t, "secret1", hash, "hash must not be the plain value")

		require.NoError(t, hasher.Compare(hash, "secret1"))
	})

	t.Run("compare fail on mismatch", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)

		require.Error(t, hasher.Compare(hash, "secret2"))
	})

	t.Run("values over bcrypt input limit", func(t *testing.T) {
		// Refresh tokens are signed JWTs, way past bcrypt's 72 bytes
		long := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20)

		hash, err := hasher.Hash(long)
		require.NoError(t, err)

		require.NoError(t, hasher.Compare(hash, long))
		require.Error(t, hasher.Compare(hash, long+"x"), "tail changes must not be silently truncated away")
	})

	t.Run("same value hashes differently", func(t *testing.T) {
		hash1, err := hasher.Hash("secret1")
		require.NoError(t, err)
		hash2, err := hasher.Hash("secret1")
		require.NoError(t, err)

		require.NotEqual(t, hash1, hash2, "bcrypt salts every hash")
	})
}
