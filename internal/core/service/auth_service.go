package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/core/ports"
	"github.com/marketplace/commodity-api/internal/pkg/metrics"
)

// AuthService implements registration, login and the password lifecycle.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	revoker ports.TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the candidate, hashes the password and stores the
// account. Nothing is written if hashing fails.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	candidate := domain.UserCandidate{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     domain.Role(in.Role),
	}.Normalize()
	if err := domain.ValidateNewUser(candidate); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, candidate.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     candidate.Username,
		Email:        candidate.Email,
		PasswordHash: hash,
		Role:         candidate.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login checks the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		return nil, err
	}

	ok, err := s.VerifyPassword(ctx, user, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// VerifyPassword compares candidate against the stored hash of user.
func (s *AuthService) VerifyPassword(ctx context.Context, user *domain.User, candidate string) (bool, error) {
	return s.hasher.Compare(ctx, user.PasswordHash, candidate)
}

// Logout revokes the token until the moment it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return domain.ErrInvalidCredentials
	}
	if !expiresAt.After(s.now()) {
		return nil
	}
	return s.revoker.Revoke(ctx, jti, expiresAt)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile changes username and email. The stored hash is left alone.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, username, email string) (*domain.User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if err := domain.ValidateProfile(username, email); err != nil {
		return nil, err
	}
	return s.repo.UpdateProfile(ctx, userID, username, email, s.now())
}

// ChangePassword verifies the current password and stores a fresh hash of
// the next one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.VerifyPassword(ctx, user, current)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}
	if err := domain.ValidatePassword(next); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(ctx, next)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash, s.now()); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
