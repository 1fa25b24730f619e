package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UploadImage handles POST /v1/assets/images.  The multipart "file"
// part is streamed to the content store and its public URL returned.
func (h *AdminHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	url, err := h.Assets.WithCredential(credential(c)).UploadMultipartImage(c.Request().Context(), fh)
	if err != nil {
		return remoteFail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
