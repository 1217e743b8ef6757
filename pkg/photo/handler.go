package photo

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/internal/handler"
	"github.com/snap-party/snapparty/pkg/model"
)

func NewHandler(photoService Service) Handler {
	return Handler{photoService}
}

type Handler struct {
	photoService Service
}

type Service interface {
	Upload(ctx context.Context, eventID uint, userID string, fileName string, contentType string, size int64, reader io.Reader) (*model.Photo, error)
	FindByEvent(ctx context.Context, eventID uint) ([]model.Photo, error)
	Download(ctx context.Context, id uint, variant string, dst io.Writer, cb func(contentLength int64)) error
}

// Upload photo
func (h Handler) Upload(c *gin.Context) {
	// swagger:route POST /events/{id}/photos uploadPhoto
	//
	// Upload photo
	//
	// Add a photo to the event's shared gallery. The image goes into the
	// multipart form field "image". Uploading does not touch the shot
	// allowance; burn a shot separately once the upload is acknowledged.
	//
	// consumes:
	//   - multipart/form-data
	//
	// security:
	//   deviceSession:
	//
	// responses:
	//   201: Photo
	//   400: Error
	//   401: Error
	//   404: Error
	//   413: Error
	//   415: Error
	eventID, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	device, err := handler.GetDeviceFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("image form file not found: %v", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer func(file io.Closer) {
		_ = file.Close()
	}(file)

	photo, err := h.photoService.Upload(c.Request.Context(), eventID, device.ID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// List photos
func (h Handler) List(c *gin.Context) {
	// swagger:route GET /events/{id}/photos listPhotos
	//
	// List photos
	//
	// List the event's photos, newest first. Always returns the full list;
	// clients diff against what they already have.
	//
	// responses:
	//   200: Photos
	//   400: Error
	eventID, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	photos, err := h.photoService.FindByEvent(c.Request.Context(), eventID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, photos)
}

// Image download
func (h Handler) Image(c *gin.Context) {
	// swagger:route GET /photos/{id}/image downloadImage
	//
	// Download image
	//
	// Stream the photo's image data. The optional thumb query parameter
	// selects a thumbnail variant, 300x300 or 600x600.
	//
	// produces:
	//   - application/octet-stream
	//
	// responses:
	//   200:
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	variant := c.Query("thumb")

	err := h.photoService.Download(c.Request.Context(), id, variant, c.Writer, func(contentLength int64) {
		c.Header("Content-Length", fmt.Sprintf("%d", contentLength))
		c.Status(http.StatusOK)
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
}
