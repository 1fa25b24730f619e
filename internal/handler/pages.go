package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// The page handlers serve minimal HTML shells for the admin pages.  The
// interesting work happens in the guard middleware that fronts them:
// anonymous visitors are bounced to /login and authenticated visitors
// are kept out of /login.  The shells themselves just identify the page
// so deployments behind the real frontend can smoke-test routing.

const pageShell = `<!doctype html>
<html>
<head><title>%s · Cinema Admin</title></head>
<body><div id="root" data-page="%s"></div></body>
</html>
`

func servePage(title, slug string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.HTML(http.StatusOK, fmt.Sprintf(pageShell, title, slug))
	}
}

var (
	DashboardPage = servePage("Dashboard", "dashboard")
	EventsPage    = servePage("Events", "events")
	CustomerPage  = servePage("Customers", "customer")
	ReviewsPage   = servePage("Reviews", "reviews")
	CinemasPage   = servePage("Cinemas", "cinemas")
	SettingsPage  = servePage("Settings", "settings")
	LoginPage     = servePage("Sign in", "login")
)

// RootRedirect sends / to the dashboard; the guard in front of the
// dashboard then decides between the page and the login redirect.
func RootRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboard")
}

// NotFoundPage serves the catch-all 404 shell.
func NotFoundPage(c echo.Context) error {
	return c.HTML(http.StatusNotFound, fmt.Sprintf(pageShell, "Not found", "not-found"))
}
