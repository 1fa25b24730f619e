package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/report"
)

// eventReq is the JSON payload for creating or updating a screening.
type eventReq struct {
	Title       string `json:"title"`
	DateTime    string `json:"dateTime"`
	CinemaRef   string `json:"cinemaRef"`
	Description string `json:"description"`
}

// validateEvent applies the screening constraints.  New screenings must
// start no earlier than tomorrow; backdated entries are always a data
// entry mistake.
func validateEvent(req *eventReq) string {
	req.Title = strings.TrimSpace(req.Title)
	if len(req.Title) < 2 {
		return "title must be at least 2 characters"
	}
	if strings.TrimSpace(req.CinemaRef) == "" {
		return "cinema is required"
	}
	when, ok := report.ParseWhen(req.DateTime)
	if !ok {
		return "dateTime is invalid"
	}
	tomorrow := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	if when.Before(tomorrow) {
		return "dateTime must be tomorrow or later"
	}
	return ""
}

// ListEvents handles GET /v1/events with an optional ?page parameter
// (pageSize 10).  Without a page the full listing is returned.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var items []model.Event
	if page > 0 {
		items, err = h.Events.ListPage(c.Request().Context(), page)
	} else {
		items, err = h.Events.List(c.Request().Context())
	}
	if err != nil {
		return remoteFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CountEvents handles GET /v1/events/count.
func (h *AdminHandler) CountEvents(c echo.Context) error {
	n, err := h.Events.Count(c.Request().Context())
	if err != nil {
		return remoteFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// CreateEvent handles POST /v1/events.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := validateEvent(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	created, err := h.Events.Create(c.Request().Context(), credential(c), model.Event{
		Title:       req.Title,
		DateTime:    req.DateTime,
		Cinema:      model.Reference{Type: "reference", Ref: req.CinemaRef},
		Description: req.Description,
	})
	if err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeEvent, created.ID, "create")
	return c.JSON(http.StatusCreated, created)
}

// UpdateEvent handles PUT /v1/events/:id with a full event payload.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	id := c.Param("id")
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := validateEvent(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ev := model.Event{
		ID:          id,
		Title:       req.Title,
		DateTime:    req.DateTime,
		Cinema:      model.Reference{Type: "reference", Ref: req.CinemaRef},
		Description: req.Description,
	}
	if err := h.Events.Replace(c.Request().Context(), credential(c), ev); err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeEvent, id, "replace")
	return c.JSON(http.StatusOK, ev)
}

// DeleteEvent handles DELETE /v1/events/:id.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Events.Delete(c.Request().Context(), credential(c), id); err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeEvent, id, "delete")
	return c.NoContent(http.StatusNoContent)
}
