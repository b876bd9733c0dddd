package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive/internal/api/metrics"
	"github.com/taskhive/taskhive/internal/api/middleware"
	"github.com/taskhive/taskhive/internal/core/domain"
	"github.com/taskhive/taskhive/internal/core/ports"
)

// AuthHandler serves the signup, login, and logout pages.
type AuthHandler struct {
	service       ports.AccountService
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(service ports.AccountService, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{service: service, sessionTTL: sessionTTL, secureCookies: secureCookies}
}

// SignupForm handles GET /signup/. Authenticated callers are sent home.
func (h *AuthHandler) SignupForm(c echo.Context) error {
	if accountID(c) != "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	data := viewData(c, "Sign up")
	data["FormUsername"] = ""
	data["FormEmail"] = ""
	return c.Render(http.StatusOK, "signup.html", data)
}

// Signup handles POST /signup/. On success the caller is redirected to the
// login page; every failure redisplays the form with an explanatory message
// and creates nothing.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.signupError(c, form, err.Error())
	}

	_, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password1,
		PasswordConfirm: form.Password2,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			return h.signupError(c, form, "Passwords do not match.")
		case errors.Is(err, domain.ErrUsernameTaken):
			return h.signupError(c, form, "Username already exists.")
		case errors.Is(err, domain.ErrEmailTaken):
			return h.signupError(c, form, "Email already exists.")
		case errors.Is(err, domain.ErrUserExists):
			// Lost a creation race; the pre-checks passed but the insert hit a
			// unique index.
			return h.signupError(c, form, "Account already exists.")
		}
		return err
	}

	metrics.SignupsTotal.Inc()
	flash := url.QueryEscape("Account created successfully. You can now log in.")
	return c.Redirect(http.StatusSeeOther, "/login/?flash="+flash)
}

func (h *AuthHandler) signupError(c echo.Context, form signupForm, msg string) error {
	data := viewData(c, "Sign up")
	data["Error"] = msg
	data["FormUsername"] = form.Username
	data["FormEmail"] = form.Email
	return c.Render(http.StatusOK, "signup.html", data)
}

// LoginForm handles GET /login/. Authenticated callers are sent home.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if accountID(c) != "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	data := viewData(c, "Log in")
	data["FormUsername"] = ""
	return c.Render(http.StatusOK, "login.html", data)
}

// Login handles POST /login/. Unknown usernames and wrong passwords produce
// the same message so account existence is not disclosed.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.loginError(c, form, err.Error())
	}

	token, _, err := h.service.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return h.loginError(c, form, "Invalid username or password.")
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return h.loginError(c, form, "Too many login attempts. Try again later.")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(middleware.NewSessionCookie(token, h.sessionTTL, h.secureCookies))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) loginError(c echo.Context, form loginForm, msg string) error {
	data := viewData(c, "Log in")
	data["Error"] = msg
	data["FormUsername"] = form.Username
	return c.Render(http.StatusOK, "login.html", data)
}

// Logout tears down the session unconditionally and redirects to the login
// page. Registered for both GET and POST so plain links work.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(middleware.ExpireSessionCookie())
	return c.Redirect(http.StatusSeeOther, "/login/")
}
