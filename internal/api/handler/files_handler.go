package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/staffcore/employee-system/internal/core/ports"
)

// FilesHandler serves stored profile images back to authenticated users.
type FilesHandler struct {
	images ports.ImageStore
}

func NewFilesHandler(images ports.ImageStore) *FilesHandler {
	return &FilesHandler{images: images}
}

// GetImage streams the image stored at the given path, the one returned in a
// user's img_path.
//
// @Summary      Get a stored profile image
// @Tags         files
// @Produce      image/png
// @Produce      image/jpeg
// @Param        path  query  string  true  "Stored image path"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Failure      415  {object}  map[string]string
// @Router       /files/images [get]
func (h *FilesHandler) GetImage(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}

	file, err := h.images.Fetch(c.Request().Context(), path)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=%q", filepath.Base(path)))
	return c.Blob(http.StatusOK, file.ContentType, file.Content)
}
