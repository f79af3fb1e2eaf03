package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Generate(secret, "user-1", "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParse_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Generate(secret, "user-1", "user", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate([]byte("secret-a"), "user-1", "user", time.Hour)
	require.NoError(t, err)

	_, err = Parse([]byte("secret-b"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse([]byte("test-secret"), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
