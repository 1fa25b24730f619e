package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/middleware"
	"github.com/iliyamo/cinema-admin-api/internal/queue"
	"github.com/iliyamo/cinema-admin-api/internal/repository"
	queue_publisher "github.com/iliyamo/cinema-admin-api/internal/service"
)

// AdminHandler bundles the entity repositories behind the dashboard
// endpoints.  Reads are open to both roles; mutation routes are
// registered with RequireRole("admin").
type AdminHandler struct {
	Cinemas   *repository.CinemaRepo
	Events    *repository.EventRepo
	Customers *repository.CustomerRepo
	Reviews   *repository.ReviewRepo
	Assets    *content.Client
}

func NewAdminHandler(
	cinemas *repository.CinemaRepo,
	events *repository.EventRepo,
	customers *repository.CustomerRepo,
	reviews *repository.ReviewRepo,
	assets *content.Client,
) *AdminHandler {
	return &AdminHandler{
		Cinemas:   cinemas,
		Events:    events,
		Customers: customers,
		Reviews:   reviews,
		Assets:    assets,
	}
}

// credential returns the content-store write token carried by the
// caller's session, or "" for preview sessions.
func credential(c echo.Context) string {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return ""
	}
	return sess.Credential
}

// actor returns the email of the authenticated staff member for audit
// events.
func actor(c echo.Context) string {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return "unknown"
	}
	return sess.Email
}

// publishMutation emits an audit event for a successful content-store
// write.  Publish failures are deliberately ignored: the mutation has
// already happened and the request must not fail retroactively.
func publishMutation(c echo.Context, entity, id, action string) {
	_ = queue_publisher.PublishEntityMutated(c.Request().Context(), queue.EntityMutatedEvent{
		Entity:     entity,
		DocumentID: id,
		Action:     action,
		Actor:      actor(c),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// pageParam parses the optional ?page query parameter.  Zero means
// unpaginated; a malformed or non-positive value is reported to the
// caller instead of silently listing everything.
func pageParam(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errors.New("page must be a positive integer")
	}
	return page, nil
}

// remoteFail translates content-store failures into responses.  Remote
// and decode errors surface as 502 with a readable message; anything
// else is a plain 500.
func remoteFail(c echo.Context, err error) error {
	var rerr *content.RemoteError
	if errors.As(err, &rerr) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": rerr.Error()})
	}
	if errors.Is(err, content.ErrMalformedDocument) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
