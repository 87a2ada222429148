package ports

import (
	"context"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}
