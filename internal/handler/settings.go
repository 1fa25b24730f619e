package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/repository"
)

type pricesReq struct {
	ExecutivePrice float64 `json:"executivePrice"`
	PremierPrice   float64 `json:"premierPrice"`
	ClassicPrice   float64 `json:"classicPrice"`
}

// UpdateCinemaPrices handles PUT /v1/cinemas/:id/prices.  The cinema is
// read back from the store first so the price write never clobbers the
// base fields.
func (h *AdminHandler) UpdateCinemaPrices(c echo.Context) error {
	id := c.Param("id")
	var req pricesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ExecutivePrice < 0 || req.PremierPrice < 0 || req.ClassicPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prices must not be negative"})
	}

	cin, err := h.Cinemas.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return remoteFail(c, err)
	}

	cin.ExecutivePrice = req.ExecutivePrice
	cin.PremierPrice = req.PremierPrice
	cin.ClassicPrice = req.ClassicPrice
	if err := h.Cinemas.Replace(c.Request().Context(), credential(c), cin); err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeCinema, id, "replace")
	return c.JSON(http.StatusOK, cin)
}
