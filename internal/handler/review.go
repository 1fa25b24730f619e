package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
)

type reviewReq struct {
	Name      string `json:"name"`
	EventName string `json:"eventName"`
	CinemaRef string `json:"cinemaRef"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
}

// ListReviews handles GET /v1/reviews; highest rated first.
func (h *AdminHandler) ListReviews(c echo.Context) error {
	items, err := h.Reviews.List(c.Request().Context())
	if err != nil {
		return remoteFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateReview handles POST /v1/reviews.  The customer and event are
// linked by display name, matching the documents already in the store.
func (h *AdminHandler) CreateReview(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.EventName = strings.TrimSpace(req.EventName)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case len(req.Name) < 2:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be at least 2 characters"})
	case req.EventName == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventName is required"})
	case strings.TrimSpace(req.CinemaRef) == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cinema is required"})
	case req.Rating < 0 || req.Rating > 5:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 5"})
	case req.Message == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
	}

	created, err := h.Reviews.Create(c.Request().Context(), credential(c), model.Review{
		Name:      req.Name,
		EventName: req.EventName,
		Cinema:    model.Reference{Type: "reference", Ref: req.CinemaRef},
		Rating:    req.Rating,
		Message:   req.Message,
	})
	if err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeReview, created.ID, "create")
	return c.JSON(http.StatusCreated, created)
}

// DeleteReview handles DELETE /v1/reviews/:id.
func (h *AdminHandler) DeleteReview(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Reviews.Delete(c.Request().Context(), credential(c), id); err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeReview, id, "delete")
	return c.NoContent(http.StatusNoContent)
}
