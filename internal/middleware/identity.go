package middleware

// identity.go provides helpers shared across middleware files for
// extracting the caller's identity from the request context.

import "github.com/labstack/echo/v4"

// currentUserKey returns the authenticated account email for keying
// rate-limit buckets, or "anon" when the request is unauthenticated.
func currentUserKey(c echo.Context) string {
	if v, ok := c.Get("user_email").(string); ok && v != "" {
		return v
	}
	return "anon"
}
