package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/session"
)

func guardEnv(t *testing.T) (*echo.Echo, *session.Manager) {
	t.Helper()
	e := echo.New()
	sessions := session.NewManager(session.NewMemoryStore(), time.Minute)
	guard := PageGuard(sessions)

	page := func(c echo.Context) error { return c.String(http.StatusOK, "page") }
	e.GET("/login", page, guard)
	e.GET("/dashboard", page, guard)
	return e, sessions
}

func loginCookie(t *testing.T, sessions *session.Manager, s model.Session) *http.Cookie {
	t.Helper()
	id, err := sessions.Create(context.Background(), s)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: id}
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	e, _ := guardEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?from=%2Fdashboard", rec.Header().Get("Location"))
}

func TestGuardAllowsAuthenticatedPageView(t *testing.T) {
	e, sessions := guardEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(loginCookie(t, sessions, model.Session{Email: "a@b.c", Role: model.RolePreview}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "page", rec.Body.String())
}

func TestGuardBouncesAuthenticatedOffLogin(t *testing.T) {
	e, sessions := guardEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(loginCookie(t, sessions, model.Session{Email: "a@b.c", Role: model.RoleAdmin}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestGuardServesLoginToAnonymous(t *testing.T) {
	e, _ := guardEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardIgnoresStaleCookie(t *testing.T) {
	e, _ := guardEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "deadbeef"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?from=%2Fdashboard", rec.Header().Get("Location"))
}
