package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/storage"
)

// UploadHandler exposes standalone image upload. Clients that upload
// the photo first and file the complaint afterwards use this endpoint;
// the complaint create path also accepts the photo inline.
type UploadHandler struct {
	Store *storage.LocalStore
}

func NewUploadHandler(store *storage.LocalStore) *UploadHandler {
	return &UploadHandler{Store: store}
}

// Upload stores a multipart "image" part and returns its public URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No image file was uploaded"})
	}
	url, err := h.Store.SaveUpload(file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "File upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Image uploaded successfully",
		"imageUrl": "/" + url,
	})
}
