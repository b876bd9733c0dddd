package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "taskhive_session"

// Context keys set by LoadSession.
const (
	CtxAccountID = "account_id"
	CtxUsername  = "username"
)

// LoadSession parses the session cookie and, when the token verifies, injects
// the account identity into the request context. It never rejects a request:
// an absent or invalid cookie simply leaves the caller anonymous.
func LoadSession(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return next(c)
			}

			if sub, ok := claims["sub"].(string); ok {
				c.Set(CtxAccountID, sub)
			}
			if username, ok := claims["username"].(string); ok {
				c.Set(CtxUsername, username)
			}

			return next(c)
		}
	}
}

// RequireLogin redirects anonymous callers to the login page. It assumes
// LoadSession has already run.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if accountID, _ := c.Get(CtxAccountID).(string); accountID == "" {
				return c.Redirect(http.StatusSeeOther, "/login/")
			}
			return next(c)
		}
	}
}

// NewSessionCookie wraps a signed session token in an HTTP-only cookie.
func NewSessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpireSessionCookie returns a cookie that clears the session.
func ExpireSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
}
