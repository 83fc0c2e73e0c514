package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/silverharvest/harvest-system/internal/core/domain"
	"github.com/silverharvest/harvest-system/internal/core/ports"
	"github.com/silverharvest/harvest-system/pkg/password"
)

// AuthService implements sign-up and sign-in.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// normalizeEmail makes the login identifier case- and whitespace-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new account. The email must not already exist; the
// password is hashed before anything is persisted.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if in.UserID == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: userId, email and password are required", domain.ErrInvalidInput)
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("sign up: check email: %w", err)
	}
	if exists {
		s.log.Info().Str("email", email).Msg("sign-up rejected: email already registered")
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, password.ErrTooLong) {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, password.MaxLength)
	}
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           in.UserID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// SignIn checks the password against the stored hash and issues a token
// whose subject is the email and whose role is the stored role.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("sign in: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Info().Str("user_id", user.ID).Msg("sign-in rejected: password mismatch")
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Email, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Msg("token issued")
	return signed, nil
}
