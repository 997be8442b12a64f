package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "tourister", "tourister", time.Hour, 24*time.Hour)

	access, refresh, err := a.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	accessToken, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	claims, ok := accessToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])

	_, err = a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
}

func TestAccessTokenRejectedByRefreshValidator(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "tourister", "tourister", time.Hour, 24*time.Hour)

	access, _, err := a.GenerateTokens(42)
	require.NoError(t, err)

	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "tourister", "tourister", -time.Minute, 24*time.Hour)

	access, _, err := a.GenerateTokens(42)
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}
