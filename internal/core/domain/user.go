package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("username already registered")
var ErrEmailExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInactiveUser = errors.New("inactive user")

// User models a registered account. Active gates every authenticated request:
// the session guard re-reads the record from the store each time, so flipping
// it off locks the account out immediately regardless of outstanding tokens.
type User struct {
	ID           int64     `json:"usuarioID"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"activo"`
	CreatedAt    time.Time `json:"-"`
}
