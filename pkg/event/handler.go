package event

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-party/snapparty/internal/handler"
	"github.com/snap-party/snapparty/pkg/model"
)

func NewHandler(eventService Service) Handler {
	return Handler{eventService}
}

type Handler struct {
	eventService Service
}

type Service interface {
	Create(ctx context.Context, name string, createdBy string) (*model.Event, error)
	FindById(ctx context.Context, id uint) (*model.Event, error)
	FindByJoinCode(ctx context.Context, code string) (*model.Event, error)
}

type CreateEventRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create a new photo-sharing event. The join code is generated server-side.
	//
	// security:
	//   deviceSession:
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   415: Error
	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	device, err := handler.GetDeviceFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), request.Name, device.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by its id
	//
	// responses:
	//   200: Event
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// FindByJoinCode event
func (h Handler) FindByJoinCode(c *gin.Context) {
	// swagger:route GET /events/join-code/{code} findEventByJoinCode
	//
	// Find event by join code
	//
	// Look up the event behind a scanned join code
	//
	// responses:
	//   200: Event
	//   404: Error
	code := c.Param("code")

	event, err := h.eventService.FindByJoinCode(c.Request.Context(), code)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}
