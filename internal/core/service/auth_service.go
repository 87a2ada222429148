package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
	"github.com/davsiu2102/clinical-records-api/internal/core/ports"
	"github.com/davsiu2102/clinical-records-api/internal/pkg/password"
	"github.com/davsiu2102/clinical-records-api/internal/pkg/token"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	codec  *token.Codec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Register hashes the password and creates an active user. Duplicate
// username or email surfaces as domain.ErrUserExists / domain.ErrEmailExists
// from the repository's unique constraints.
func (s *AuthService) Register(ctx context.Context, username, email, pass string) (*domain.User, error) {
	if username == "" || email == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// authenticate validates a username/password pair. An unknown username and a
// wrong password are deliberately indistinguishable: both return
// domain.ErrInvalidCredentials.
func (s *AuthService) authenticate(ctx context.Context, username, pass string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the credentials and issues a bearer token for the user.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, error) {
	if username == "" || pass == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.authenticate(ctx, username, pass)
	if err != nil {
		return "", err
	}

	tkn, err := s.codec.Issue(user.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("token issue failed")
		return "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return tkn, nil
}
