package ports

import (
	"context"

	"github.com/taskhive/taskhive/internal/core/domain"
)

// SignupInput carries the signup form fields. Password and PasswordConfirm
// must match; username and email must not be registered yet.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// AccountService defines registration and session establishment.
type AccountService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.Account, error)
	// Login verifies credentials and returns a signed session token. Unknown
	// usernames and wrong passwords fail identically with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
