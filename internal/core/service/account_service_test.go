package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive/internal/core/domain"
	"github.com/taskhive/taskhive/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	accounts  map[string]*domain.Account // keyed by username
	createErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrUserExists
	}
	created := cloneAccount(account)
	created.ID = "id_" + account.Username
	r.accounts[created.Username] = cloneAccount(created)
	return cloneAccount(created), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if a, ok := r.accounts[username]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubThrottle struct {
	failures map[string]int
	blocked  bool
	resets   int
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) TooManyAttempts(_ context.Context, _ string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func signupInput(username, email, password string) ports.SignupInput {
	return ports.SignupInput{
		Username:        username,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
	}
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAccountService_Signup_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, nil, "secret", time.Hour, discardLogger)

	account, err := svc.Signup(context.Background(), signupInput("alice", "alice@example.com", "pass123"))
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if account.PasswordHash == "pass123" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Signup_PasswordMismatch(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, nil, "secret", time.Hour, discardLogger)

	input := signupInput("alice", "alice@example.com", "pass123")
	input.PasswordConfirm = "different"

	if _, err := svc.Signup(context.Background(), input); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if len(repo.accounts) != 0 {
		t.Fatal("mismatched passwords must not create an account")
	}
}

func TestAccountService_Signup_DuplicateUsername(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("bob", "bob@example.com", "pass")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), signupInput("bob", "other@example.com", "pass")); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(repo.accounts) != 1 {
		t.Fatalf("expected exactly 1 account, got %d", len(repo.accounts))
	}
}

func TestAccountService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("bob", "bob@example.com", "pass")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), signupInput("robert", "bob@example.com", "pass")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_Signup_CreationRace(t *testing.T) {
	repo := newStubAccountRepo()
	// The pre-checks pass, then the insert hits the unique index.
	repo.createErr = domain.ErrUserExists
	svc := NewAccountService(repo, nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("carol", "carol@example.com", "pass")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists from the race, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	throttle := newStubThrottle()
	svc := NewAccountService(repo, throttle, "secret", time.Hour, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("carol", "carol@example.com", "s3cret")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, account, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected session token")
	}
	if account == nil || account.Username != "carol" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if throttle.resets != 1 {
		t.Fatalf("successful login must reset the throttle, resets=%d", throttle.resets)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "carol" {
		t.Fatalf("expected username claim carol, got %v", claims["username"])
	}
	if claims["sub"] != account.ID {
		t.Fatalf("expected sub claim %q, got %v", account.ID, claims["sub"])
	}
}

func TestAccountService_Login_GenericFailure(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("dave", "dave@example.com", "goodpass")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// Unknown username and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login(context.Background(), "ghost", "pass")
	_, _, wrongErr := svc.Login(context.Background(), "dave", "badpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
}

func TestAccountService_Login_FailuresCountAgainstThrottle(t *testing.T) {
	repo := newStubAccountRepo()
	throttle := newStubThrottle()
	svc := NewAccountService(repo, throttle, "secret", time.Hour, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("erin", "erin@example.com", "goodpass")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "erin", "bad1")
	_, _, _ = svc.Login(context.Background(), "erin", "bad2")
	_, _, _ = svc.Login(context.Background(), "ghost", "bad3")

	if throttle.failures["erin"] != 2 {
		t.Fatalf("expected 2 recorded failures for erin, got %d", throttle.failures["erin"])
	}
	if throttle.failures["ghost"] != 1 {
		t.Fatalf("expected 1 recorded failure for ghost, got %d", throttle.failures["ghost"])
	}
}

func TestAccountService_Login_Throttled(t *testing.T) {
	repo := newStubAccountRepo()
	throttle := newStubThrottle()
	throttle.blocked = true
	svc := NewAccountService(repo, throttle, "secret", time.Hour, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("frank", "frank@example.com", "goodpass")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "frank", "goodpass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}
