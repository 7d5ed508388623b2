package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/config"
)

func setupJWTConfig(t *testing.T) {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.AccessTokenMinutes = 30
	config.AppConfig.RefreshTokenDays = 7
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setupJWTConfig(t)

	token, err := GenerateAccessToken("user-1")
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestTokenTypeMismatch(t *testing.T) {
	setupJWTConfig(t)

	access, err := GenerateAccessToken("user-1")
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = ValidateToken(access, TokenTypeRefresh)
	assert.Error(t, err, "access token must not pass as refresh")
	_, err = ValidateToken(refresh, TokenTypeAccess)
	assert.Error(t, err, "refresh token must not pass as access")
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	setupJWTConfig(t)

	token, err := GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = ValidateToken(token+"x", TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenRemainingTTL(t *testing.T) {
	claims := jwt.MapClaims{"exp": float64(time.Now().Add(10 * time.Minute).Unix())}
	ttl := TokenRemainingTTL(claims)
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)

	expired := jwt.MapClaims{"exp": float64(time.Now().Add(-time.Minute).Unix())}
	assert.Equal(t, time.Duration(0), TokenRemainingTTL(expired))

	assert.Equal(t, time.Duration(0), TokenRemainingTTL(jwt.MapClaims{}))
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
