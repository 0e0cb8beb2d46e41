package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret: "test-secret-key",
		Expiry: expiry,
		Issuer: "research-portal-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.GenerateToken(42, "faculty@example.com", "faculty")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "faculty@example.com", claims.Email)
	assert.Equal(t, "faculty", claims.Role)
	assert.Equal(t, "research-portal-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateToken(1, "user@example.com", "public")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testManager(time.Hour).GenerateToken(1, "user@example.com", "public")
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := testManager(time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	m := testManager(time.Hour)

	first, err := m.GenerateToken(1, "user@example.com", "public")
	require.NoError(t, err)
	second, err := m.GenerateToken(1, "user@example.com", "public")
	require.NoError(t, err)

	a, err := m.ValidateToken(first)
	require.NoError(t, err)
	b, err := m.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
