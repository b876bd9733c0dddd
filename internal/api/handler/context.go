package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive/internal/api/middleware"
)

// accountID returns the authenticated account id, or "" for anonymous callers.
func accountID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxAccountID).(string)
	return id
}

// viewData assembles the fields every template expects: the page title, the
// logged-in username (empty when anonymous), the CSRF token injected by the
// CSRF middleware, and an optional flash message from the query string.
func viewData(c echo.Context, title string) echo.Map {
	username, _ := c.Get(middleware.CtxUsername).(string)
	csrf, _ := c.Get("csrf").(string)
	return echo.Map{
		"Title":    title,
		"Username": username,
		"CSRF":     csrf,
		"Flash":    c.QueryParam("flash"),
	}
}
