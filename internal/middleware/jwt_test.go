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
	"github.com/iliyamo/cinema-admin-api/internal/utils"
)

const testSecret = "test-secret"

func apiEnv(t *testing.T, roles ...string) (*echo.Echo, *session.Manager) {
	t.Helper()
	e := echo.New()
	sessions := session.NewManager(session.NewMemoryStore(), time.Minute)

	g := e.Group("/v1")
	g.Use(JWTAuth(testSecret, sessions))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("/ping", func(c echo.Context) error {
		sess, _ := CurrentSession(c)
		return c.String(http.StatusOK, sess.Email)
	})
	return e, sessions
}

func bearerFor(t *testing.T, sessions *session.Manager, s model.Session) string {
	t.Helper()
	sid, err := sessions.Create(context.Background(), s)
	require.NoError(t, err)
	access, err := utils.NewAccessToken(testSecret, s.Email, s.Role, sid, 5)
	require.NoError(t, err)
	return "Bearer " + access.Token
}

func TestJWTAuthLoadsSession(t *testing.T) {
	e, sessions := apiEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, sessions, model.Session{Email: "a@b.c", Role: model.RolePreview}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.c", rec.Body.String())
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	e, _ := apiEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsDestroyedSession(t *testing.T) {
	e, sessions := apiEnv(t)
	sid, err := sessions.Create(context.Background(), model.Session{Email: "a@b.c", Role: model.RoleAdmin})
	require.NoError(t, err)
	access, err := utils.NewAccessToken(testSecret, "a@b.c", model.RoleAdmin, sid, 5)
	require.NoError(t, err)
	require.NoError(t, sessions.Destroy(context.Background(), sid))

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// The token is still cryptographically valid; the session store wins.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleBlocksPreviewFromAdminRoutes(t *testing.T) {
	e, sessions := apiEnv(t, model.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, sessions, model.Session{Email: "a@b.c", Role: model.RolePreview}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	e, sessions := apiEnv(t, model.RoleAdmin, model.RolePreview)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, sessions, model.Session{Email: "a@b.c", Role: model.RolePreview}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
