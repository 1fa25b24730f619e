package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/handler"
	"github.com/iliyamo/cinema-admin-api/internal/middleware"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/session"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Login and
// refresh live under /v1/auth and need no token; logout and me require
// a valid access token and therefore sit on the protected group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, sessions *session.Manager) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1/auth")
	auth.Use(middleware.JWTAuth(jwtSecret, sessions))
	auth.POST("/logout", a.Logout)
	auth.GET("/me", a.Me)
}

// RegisterAdmin registers the dashboard API.  Every route requires a
// valid access token; reads accept both staff roles while mutations are
// additionally restricted to admins.  Preview sessions that somehow
// reach a mutation route still cannot write: their sessions carry no
// content-store credential.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, sessions *session.Manager) {
	read := e.Group("/v1")
	read.Use(middleware.JWTAuth(jwtSecret, sessions))
	read.Use(middleware.RequireRole(model.RoleAdmin, model.RolePreview))

	read.GET("/cinemas", h.ListCinemas)
	read.GET("/events", h.ListEvents)
	read.GET("/events/count", h.CountEvents)
	read.GET("/customers", h.ListCustomers)
	read.GET("/customers/count", h.CountCustomers)
	read.GET("/reviews", h.ListReviews)
	read.GET("/dashboard/metrics", h.Metrics)

	write := e.Group("/v1")
	write.Use(middleware.JWTAuth(jwtSecret, sessions))
	write.Use(middleware.RequireRole(model.RoleAdmin))

	write.POST("/cinemas", h.CreateCinema)
	write.PUT("/cinemas/:id", h.UpdateCinema)
	write.PUT("/cinemas/:id/prices", h.UpdateCinemaPrices)
	write.DELETE("/cinemas/:id", h.DeleteCinema)

	write.POST("/events", h.CreateEvent)
	write.PUT("/events/:id", h.UpdateEvent)
	write.DELETE("/events/:id", h.DeleteEvent)

	write.POST("/customers", h.CreateCustomer)
	write.DELETE("/customers/:id", h.DeleteCustomer)

	write.POST("/reviews", h.CreateReview)
	write.DELETE("/reviews/:id", h.DeleteReview)

	write.POST("/assets/images", h.UploadImage)
}

// RegisterPages registers the navigable page shells behind the session
// guard, plus the login page and the root redirect.
func RegisterPages(e *echo.Echo, sessions *session.Manager) {
	guard := middleware.PageGuard(sessions)

	e.GET("/", handler.RootRedirect)
	e.GET("/login", handler.LoginPage, guard)
	e.GET("/dashboard", handler.DashboardPage, guard)
	e.GET("/events", handler.EventsPage, guard)
	e.GET("/customer", handler.CustomerPage, guard)
	e.GET("/reviews", handler.ReviewsPage, guard)
	e.GET("/cinemas", handler.CinemasPage, guard)
	e.GET("/settings", handler.SettingsPage, guard)

	e.RouteNotFound("/*", handler.NotFoundPage)
}
