package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	passwordService := NewPasswordService()

	t.Run("Success_HashAndCompare", func(t *testing.T) {
		hash, err := passwordService.HashPassword("my-secret-password")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "my-secret-password", hash)
		assert.True(t, passwordService.ComparePassword("my-secret-password", hash))
	})

	t.Run("Success_WrongPasswordDoesNotMatch", func(t *testing.T) {
		hash, err := passwordService.HashPassword("my-secret-password")

		require.NoError(t, err)
		assert.False(t, passwordService.ComparePassword("another-password", hash))
	})

	t.Run("Success_SamePasswordDifferentHashes", func(t *testing.T) {
		firstHash, err := passwordService.HashPassword("my-secret-password")
		require.NoError(t, err)
		secondHash, err := passwordService.HashPassword("my-secret-password")
		require.NoError(t, err)

		assert.NotEqual(t, firstHash, secondHash)
	})
}
