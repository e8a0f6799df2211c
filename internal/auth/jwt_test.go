package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-backend/internal/config"
	"video-backend/internal/models"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "video-backend"
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret"))

	user := &models.User{
		ID:       42,
		Email:    "clerk@example.com",
		Role:     "clerk",
		IsActive: true,
	}

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "clerk@example.com", claims.Email)
	assert.Equal(t, "clerk", claims.Role)
	assert.True(t, claims.IsActive)
	assert.Equal(t, "video-backend", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signer := NewJWTManager(testConfig("secret-a"))
	verifier := NewJWTManager(testConfig("secret-b"))

	token, err := signer.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: "clerk"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret"))

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}
