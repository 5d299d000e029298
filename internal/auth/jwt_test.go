package auth

import (
	"testing"
	"time"

	"union-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice"}

	token, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, &models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = ParseToken("another-secret-also-32-characters-x", token)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID:   1,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	require.Error(t, err)
}

func TestRevocationList(t *testing.T) {
	disabled := NewRevocationList(false)
	disabled.Revoke("jti-1", time.Now().Add(time.Hour))
	assert.False(t, disabled.Revoked("jti-1"))

	enabled := NewRevocationList(true)
	assert.False(t, enabled.Revoked("jti-1"))
	enabled.Revoke("jti-1", time.Now().Add(time.Hour))
	assert.True(t, enabled.Revoked("jti-1"))

	// Already-expired tokens are not worth remembering.
	enabled.Revoke("jti-2", time.Now().Add(-time.Minute))
	assert.False(t, enabled.Revoked("jti-2"))
}
