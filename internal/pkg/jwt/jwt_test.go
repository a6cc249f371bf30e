package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "24h")

	token, expiresAt, err := svc.GenerateAccessToken("user-123", "user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "user@example.com", claims["email"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "24h")

	token, _, err := svc.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
	assert.Equal(t, "user-123", claims["user_id"])
}

func TestGenerateAccessTokenInvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration", "24h")

	_, _, err := svc.GenerateAccessToken("user-123", "user@example.com")
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "24h")

	cookie := svc.RefreshTokenCookie("some-token", 1900000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}
