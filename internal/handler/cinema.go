package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
)

// ListCinemas handles GET /v1/cinemas and returns every cinema.
func (h *AdminHandler) ListCinemas(c echo.Context) error {
	items, err := h.Cinemas.List(c.Request().Context())
	if err != nil {
		return remoteFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateCinema handles POST /v1/cinemas.  The request is a multipart
// form carrying the venue fields plus the image file; the image is
// uploaded to the content store first and the cinema document stores
// the returned URL.  Price tiers always start at zero.
func (h *AdminHandler) CreateCinema(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	capacity, capErr := strconv.Atoi(c.FormValue("capacity"))

	switch {
	case len(name) < 2:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be at least 2 characters"})
	case len(location) < 2:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location must be at least 2 characters"})
	case capErr != nil || capacity < 10:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be at least 10"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
	}
	cred := credential(c)
	imageURL, err := h.Assets.WithCredential(cred).UploadMultipartImage(c.Request().Context(), fh)
	if err != nil {
		return remoteFail(c, err)
	}

	created, err := h.Cinemas.Create(c.Request().Context(), cred, model.Cinema{
		Name:     name,
		Location: location,
		Capacity: capacity,
		Image:    imageURL,
	})
	if err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeCinema, created.ID, "create")
	return c.JSON(http.StatusCreated, created)
}

// UpdateCinema handles PUT /v1/cinemas/:id with a full cinema document.
// Image changes go through the asset endpoint first; this handler only
// accepts the resulting URL.
func (h *AdminHandler) UpdateCinema(c echo.Context) error {
	id := c.Param("id")
	var body model.Cinema
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.ID = id
	body.Name = strings.TrimSpace(body.Name)
	body.Location = strings.TrimSpace(body.Location)

	switch {
	case len(body.Name) < 2:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be at least 2 characters"})
	case len(body.Location) < 2:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location must be at least 2 characters"})
	case body.Capacity < 10:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be at least 10"})
	case body.ExecutivePrice < 0 || body.PremierPrice < 0 || body.ClassicPrice < 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prices must not be negative"})
	}

	if err := h.Cinemas.Replace(c.Request().Context(), credential(c), body); err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeCinema, id, "replace")
	return c.JSON(http.StatusOK, body)
}

// DeleteCinema handles DELETE /v1/cinemas/:id.
func (h *AdminHandler) DeleteCinema(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Cinemas.Delete(c.Request().Context(), credential(c), id); err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeCinema, id, "delete")
	return c.NoContent(http.StatusNoContent)
}
