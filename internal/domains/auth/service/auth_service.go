package service

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"commanders-backend/internal/config"
	"commanders-backend/internal/domains/auth"
	"commanders-backend/pkg/jwt"
	"commanders-backend/pkg/logger"
)

type authService struct {
	cfg config.AdminConfig
	jwt *jwt.Manager
}

func NewAuthService(cfg config.AdminConfig, jwtManager *jwt.Manager) auth.AuthService {
	return &authService{cfg: cfg, jwt: jwtManager}
}

// Login check fixed admin credential pair và issue JWT role=admin.
// ADMIN_PASSWORD_HASH (bcrypt) được ưu tiên khi set; plaintext
// ADMIN_PASSWORD là legacy scheme, so sánh constant time.
func (s *authService) Login(_ context.Context, req auth.LoginReq) (*auth.LoginResp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) == 1

	var passwordOK bool
	if s.cfg.PasswordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)) == nil
	} else {
		passwordOK = s.cfg.Password != "" &&
			subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Password)) == 1
	}

	if !usernameOK || !passwordOK {
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAdminToken(s.cfg.Username)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, err
	}

	return &auth.LoginResp{Token: token}, nil
}
