package ports

import (
	"context"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
// Uniqueness of username and email is enforced by the store; violations
// surface as domain.ErrUserExists / domain.ErrEmailExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
