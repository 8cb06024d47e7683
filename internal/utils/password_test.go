package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 32) // 16 bytes hex encoded

	hash := HashPassword("pw1", salt)
	assert.True(t, CheckPassword("pw1", salt, hash))
	assert.False(t, CheckPassword("pw2", salt, hash))
}

func TestHashPassword_SaltChangesHash(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	assert.NotEqual(t, HashPassword("pw1", s1), HashPassword("pw1", s2))
}

func TestCheckPassword_WrongSalt(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	other, err := GenerateSalt()
	require.NoError(t, err)

	hash := HashPassword("pw1", salt)
	assert.False(t, CheckPassword("pw1", other, hash))
}
