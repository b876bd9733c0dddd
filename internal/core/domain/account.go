package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrUsernameTaken = errors.New("username already exists")
var ErrEmailTaken = errors.New("email already exists")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrTooManyAttempts = errors.New("too many login attempts")

// Account models a registered user. Username and email are unique across the
// system; the password is stored only as a bcrypt hash.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
