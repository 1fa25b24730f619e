package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/session"
)

// SessionCookie is the cookie carrying the session store id for page
// navigation.  API calls authenticate with the Bearer token instead.
const SessionCookie = "sid"

// PageGuard gates the navigable page routes on session state:
//
//   - no session on a guarded page -> redirect to /login, carrying the
//     originally requested location in the "from" query parameter (the
//     location is recorded but not replayed after login)
//   - an active session on /login -> redirect to /dashboard
//
// Pages reached with a session get it stored in context under
// "session" like JWTAuth does for API routes.
func PageGuard(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := sessionFromCookie(c, sessions)
			path := c.Request().URL.Path

			if path == "/login" {
				if ok {
					return c.Redirect(http.StatusFound, "/dashboard")
				}
				return next(c)
			}
			if !ok {
				return c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(path))
			}
			c.Set("session", sess)
			return next(c)
		}
	}
}

func sessionFromCookie(c echo.Context, sessions *session.Manager) (model.Session, bool) {
	ck, err := c.Cookie(SessionCookie)
	if err != nil || ck.Value == "" {
		return model.Session{}, false
	}
	sess, err := sessions.Current(c.Request().Context(), ck.Value)
	if err != nil {
		return model.Session{}, false
	}
	return sess, true
}
