package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	cfg := testConfig()
	cfg.AdminUsername = "operator"
	cfg.JWTExpiry = time.Hour

	auth := NewAuthService(cfg)
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	cfg.AdminPasswordHash = hash
	return auth
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	auth := newAuth(t)

	token, err := auth.Login("operator", "s3cret-pass")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAdmin, claims.TokenType)
	assert.Equal(t, "operator", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	auth := newAuth(t)

	_, err := auth.Login("operator", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("someone", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_DisabledWithoutHash(t *testing.T) {
	auth := NewAuthService(testConfig())
	_, err := auth.Login("admin", "whatever")
	assert.ErrorIs(t, err, ErrAdminDisabled)
}

func TestAuthService_RejectsForeignSignature(t *testing.T) {
	auth := newAuth(t)
	token, err := auth.GenerateAdminToken("operator")
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "another-secret"
	_, err = NewAuthService(other).ValidateToken(token)
	assert.Error(t, err)
}
