package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/report"
)

// ListCustomers handles GET /v1/customers with an optional ?page
// parameter (pageSize 10).
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var items []model.Customer
	if page > 0 {
		items, err = h.Customers.ListPage(c.Request().Context(), page)
	} else {
		items, err = h.Customers.List(c.Request().Context())
	}
	if err != nil {
		return remoteFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CountCustomers handles GET /v1/customers/count.
func (h *AdminHandler) CountCustomers(c echo.Context) error {
	n, err := h.Customers.Count(c.Request().Context())
	if err != nil {
		return remoteFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// CreateCustomer handles POST /v1/customers.  Like cinemas this is a
// multipart form: profile fields plus an optional image file.
func (h *AdminHandler) CreateCustomer(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	city := strings.TrimSpace(c.FormValue("city"))
	age, ageErr := strconv.Atoi(c.FormValue("age"))
	spent, spentErr := strconv.ParseFloat(c.FormValue("totalSpent"), 64)
	dateJoin := strings.TrimSpace(c.FormValue("dateJoin"))

	joined, joinedOK := report.ParseWhen(dateJoin)
	switch {
	case len(name) < 2:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be at least 2 characters"})
	case len(city) < 2:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city must be at least 2 characters"})
	case ageErr != nil || age < 15:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age must be at least 15"})
	case spentErr != nil || spent < 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "totalSpent must not be negative"})
	case !joinedOK:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dateJoin is invalid"})
	case joined.After(time.Now()):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dateJoin must not be in the future"})
	}

	cred := credential(c)
	var imageURL string
	if fh, err := c.FormFile("image"); err == nil {
		imageURL, err = h.Assets.WithCredential(cred).UploadMultipartImage(c.Request().Context(), fh)
		if err != nil {
			return remoteFail(c, err)
		}
	}

	created, err := h.Customers.Create(c.Request().Context(), cred, model.Customer{
		Name:       name,
		Age:        model.FlexInt(age),
		Image:      imageURL,
		City:       city,
		DateJoin:   dateJoin,
		TotalSpent: spent,
	})
	if err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeCustomer, created.ID, "create")
	return c.JSON(http.StatusCreated, created)
}

// DeleteCustomer handles DELETE /v1/customers/:id.
func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Customers.Delete(c.Request().Context(), credential(c), id); err != nil {
		return remoteFail(c, err)
	}
	publishMutation(c, content.TypeCustomer, id, "delete")
	return c.NoContent(http.StatusNoContent)
}
