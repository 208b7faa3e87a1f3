package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "0123456789abcdef0123"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(key, 7, true, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.True(t, claims.IsStaff)
}

func TestParseToken_Invalid(t *testing.T) {
	expired, err := GenerateToken(key, 7, false, -time.Minute)
	require.NoError(t, err)
	other, err := GenerateToken("another-signing-key-123", 7, false, time.Hour)
	require.NoError(t, err)
	anonymous, err := GenerateToken(key, 0, false, time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": other,
		"no user":   anonymous,
		"garbage":   "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(key, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
