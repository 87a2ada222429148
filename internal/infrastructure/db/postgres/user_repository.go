package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
)

const uniqueViolation = "23505"

// UserRepository persists user accounts in the usuarios table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and returns it with its assigned ID. Unique
// constraint violations are mapped to domain errors by constraint name, so
// duplicate username and duplicate email stay distinguishable.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO usuarios (username, email, password_hash, activo)
		VALUES ($1, $2, $3, $4)
		RETURNING usuario_id, created_at`

	created := *user
	err := r.db.QueryRowContext(ctx, q, user.Username, user.Email, user.PasswordHash, user.Active).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "usuarios_username_key":
				return nil, domain.ErrUserExists
			case "usuarios_email_key":
				return nil, domain.ErrEmailExists
			}
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &created, nil
}

// FindByUsername fetches a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT usuario_id, username, email, password_hash, activo, created_at
		FROM usuarios
		WHERE username = $1`

	var user domain.User
	err := r.db.QueryRowContext(ctx, q, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Active, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}
