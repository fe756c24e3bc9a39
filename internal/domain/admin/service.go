// internal/domain/admin/service.go
package admin

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
)

// Service checks admin credentials and manages passwords
type Service struct {
	repo      Repository
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
	gate      *Gate
	log       logrus.FieldLogger
}

// NewService creates a new admin service
func NewService(repo Repository, passwords *auth.PasswordManager, tokens *auth.JWTManager, gate *Gate, log logrus.FieldLogger) *Service {
	return &Service{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		gate:      gate,
		log:       log.WithField("component", "admin"),
	}
}

// Login checks the credentials, raises the session's admin flag and
// issues a token. Unknown user and wrong password look the same.
func (s *Service) Login(ctx context.Context, session string, req LoginRequest) (*LoginResponse, error) {
	a, err := s.repo.Find(ctx, req.Username)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := s.passwords.VerifyPassword(req.Password, a.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.WithError(err).WithField("username", a.Username).Error("stored password hash is unusable")
		}
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(a.Username)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Login(ctx, session); err != nil {
		return nil, err
	}

	s.log.WithField("username", a.Username).Info("admin logged in")
	return &LoginResponse{Message: "Login successful", Username: a.Username, Token: token}, nil
}

// Logout clears the session's admin flag
func (s *Service) Logout(ctx context.Context, session string) error {
	return s.gate.Logout(ctx, session)
}

// UpdatePassword replaces the password of an existing admin
func (s *Service) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	hash, err := s.passwords.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	n, err := s.repo.SetPassword(ctx, req.Username, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAdminNotFound
	}

	s.log.WithField("username", req.Username).Info("admin password updated")
	return nil
}
