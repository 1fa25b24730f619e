package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/session"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and loads the persisted session it references.  The token's
// claims carry the account email (sub), the role and the session store
// id (sid).  On success the middleware stores the email under
// "user_email", the role under "role" and the full session under
// "session" so handlers can read them via c.Get().
//
// A valid token whose session has been destroyed (logout, expiry) is
// rejected: the session store is authoritative, not the token.
func JWTAuth(secret string, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sid, _ := claims["sid"].(string)
			if sid == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sess, err := sessions.Current(c.Request().Context(), sid)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
			}

			c.Set("user_email", sess.Email)
			c.Set("role", sess.Role)
			c.Set("session", sess)
			c.Set("session_id", sid)
			return next(c)
		}
	}
}

// CurrentSession returns the session loaded by JWTAuth or PageGuard.
func CurrentSession(c echo.Context) (model.Session, bool) {
	s, ok := c.Get("session").(model.Session)
	return s, ok
}
