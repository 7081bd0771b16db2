package ports

import (
	"context"
	"time"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdatePassword replaces only the stored hash.
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	// UpdateProfile replaces username and email, never the hash.
	UpdateProfile(ctx context.Context, id, username, email string, at time.Time) (*domain.User, error)
}

// TokenRevoker keeps the ids of tokens that were logged out before expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// PasswordHasher computes and checks one-way password digests.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Compare returns false, nil on mismatch and an error only when the
	// stored hash cannot be evaluated.
	Compare(ctx context.Context, hash, plaintext string) (bool, error)
}
