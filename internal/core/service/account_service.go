package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive/internal/core/domain"
	"github.com/taskhive/taskhive/internal/core/ports"
)

// LoginThrottle limits repeated failed login attempts per username. A nil
// throttle disables limiting.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AccountService implements signup and login.
type AccountService struct {
	repo       ports.AccountRepository
	throttle   LoginThrottle
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, throttle LoginThrottle, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AccountService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AccountService{
		repo:       repo,
		throttle:   throttle,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Signup creates a new account. Password and confirmation must match, and the
// username and email must both be unregistered. A duplicate-key race at insert
// time surfaces as domain.ErrUserExists rather than a storage fault.
func (s *AccountService) Signup(ctx context.Context, input ports.SignupInput) (*domain.Account, error) {
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create account")
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("account_id", created.ID).Msg("account created")
	return created, nil
}

// Login verifies credentials and returns a signed session token. Unknown
// usernames and wrong passwords both fail with domain.ErrInvalidCredentials so
// account existence is not disclosed. Failed attempts count against the
// throttle; a successful login resets it.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle unavailable, continuing")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	s.logger.Info().Str("username", account.Username).Msg("login succeeded")
	return token, account, nil
}

func (s *AccountService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

func (s *AccountService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"username": account.Username,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
