package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Minute, time.Hour)

	token, err := GenerateAccessToken(7, "admin@example.com", "admin")
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateAccessToken_Rejects(t *testing.T) {
	InitJWT("test-secret", -time.Minute, time.Hour)
	expired, err := GenerateAccessToken(1, "a@example.com", "admin")
	require.NoError(t, err)

	InitJWT("test-secret", time.Minute, time.Hour)
	_, err = ValidateAccessToken(expired)
	assert.Error(t, err)

	InitJWT("other-secret", time.Minute, time.Hour)
	forged, err := GenerateAccessToken(1, "a@example.com", "admin")
	require.NoError(t, err)
	InitJWT("test-secret", time.Minute, time.Hour)
	_, err = ValidateAccessToken(forged)
	assert.Error(t, err)

	_, err = ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("")
	assert.False(t, ok)
}

func TestRefreshTokens(t *testing.T) {
	a, err := GenerateRefreshToken()
	require.NoError(t, err)
	b, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, HashRefreshToken(a), 64)
	assert.Equal(t, HashRefreshToken(a), HashRefreshToken(a))
}

func TestPasswordHashing(t *testing.T) {
	SetHashCost(4)

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ComparePassword(hash, "s3cret-pass"))
	assert.False(t, ComparePassword(hash, "wrong"))
}
