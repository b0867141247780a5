package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "s3cret-password"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	second, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
