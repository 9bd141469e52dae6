package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"commanders-backend/internal/config"
	"commanders-backend/internal/domains/auth"
	"commanders-backend/pkg/jwt"
)

func newTestJWT(t *testing.T) *jwt.Manager {
	t.Helper()
	return jwt.NewManager("test-secret", 1)
}

func TestLoginPlaintextCredentials(t *testing.T) {
	svc := NewAuthService(config.AdminConfig{
		Username: "admin",
		Password: "s3cret",
	}, newTestJWT(t))
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginReq{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// Token phải validate được với role admin
	claims, err := newTestJWT(t).ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(config.AdminConfig{
		Username:     "admin",
		Password:     "plaintext-ignored",
		PasswordHash: string(hash),
	}, newTestJWT(t))
	ctx := context.Background()

	_, err = svc.Login(ctx, auth.LoginReq{Username: "admin", Password: "hashed-pass"})
	assert.NoError(t, err)

	// Plaintext bị bỏ qua khi hash được set
	_, err = svc.Login(ctx, auth.LoginReq{Username: "admin", Password: "plaintext-ignored"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	svc := NewAuthService(config.AdminConfig{
		Username: "admin",
		Password: "s3cret",
	}, newTestJWT(t))
	ctx := context.Background()

	cases := []auth.LoginReq{
		{Username: "admin", Password: "wrong"},
		{Username: "intruder", Password: "s3cret"},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	// Missing fields là validation error, không phải credentials error
	_, err := svc.Login(ctx, auth.LoginReq{Username: "admin"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRejectsEmptyConfiguredPassword(t *testing.T) {
	// Config không có password: không credential nào được chấp nhận
	svc := NewAuthService(config.AdminConfig{Username: "admin"}, newTestJWT(t))

	_, err := svc.Login(context.Background(), auth.LoginReq{Username: "admin", Password: "anything"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
