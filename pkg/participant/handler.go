package participant

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-party/snapparty/internal/handler"
	"github.com/snap-party/snapparty/pkg/model"
)

func NewHandler(participantService Service) Handler {
	return Handler{participantService}
}

type Handler struct {
	participantService Service
}

type Service interface {
	Join(ctx context.Context, eventID uint, userID string, userName string) (*model.Participant, error)
	FindByEventAndUser(ctx context.Context, eventID uint, userID string) (*model.Participant, error)
	FindByEvent(ctx context.Context, eventID uint) ([]model.Participant, error)
	UpdateShots(ctx context.Context, id uint, userID string, shotsRemaining int) error
	ConsumeShot(ctx context.Context, id uint, userID string) (*model.Participant, error)
}

type JoinRequest struct {
	UserName string `json:"userName" binding:"required,min=1,max=100"`
}

// Join event
func (h Handler) Join(c *gin.Context) {
	// swagger:route POST /events/{id}/participants joinEvent
	//
	// Join event
	//
	// Join an event. Joining twice from the same device returns the existing
	// participant and does not reset the shot allowance.
	//
	// security:
	//   deviceSession:
	//
	// responses:
	//   201: Participant
	//   400: Error
	//   401: Error
	//   404: Error
	//   415: Error
	eventID, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request JoinRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	device, err := handler.GetDeviceFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	participant, err := h.participantService.Join(c.Request.Context(), eventID, device.ID, request.UserName)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// Find participant
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /events/{id}/participants/{userId} findParticipant
	//
	// Find participant
	//
	// Find a device's participant record within an event
	//
	// responses:
	//   200: Participant
	//   400: Error
	//   404: Error
	eventID, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	userID := c.Param("userId")

	participant, err := h.participantService.FindByEventAndUser(c.Request.Context(), eventID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// List participants
func (h Handler) List(c *gin.Context) {
	// swagger:route GET /events/{id}/participants listParticipants
	//
	// List participants
	//
	// List all participants of an event
	//
	// responses:
	//   200: Participants
	//   400: Error
	eventID, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	participants, err := h.participantService.FindByEvent(c.Request.Context(), eventID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

type UpdateShotsRequest struct {
	ShotsRemaining *int `json:"shotsRemaining" binding:"required,gte=0,lte=10"`
}

// UpdateShots participant
func (h Handler) UpdateShots(c *gin.Context) {
	// swagger:route PUT /participants/{id}/shots updateShots
	//
	// Update shot allowance
	//
	// Overwrite the remaining shot allowance with a caller-computed value
	//
	// security:
	//   deviceSession:
	//
	// responses:
	//   204:
	//   400: Error
	//   401: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateShotsRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	device, err := handler.GetDeviceFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	err = h.participantService.UpdateShots(c.Request.Context(), id, device.ID, *request.ShotsRemaining)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ConsumeShot participant
func (h Handler) ConsumeShot(c *gin.Context) {
	// swagger:route POST /participants/{id}/shots/consume consumeShot
	//
	// Consume a shot
	//
	// Atomically burn one shot. Returns the updated participant, or a conflict
	// once the allowance is exhausted.
	//
	// security:
	//   deviceSession:
	//
	// responses:
	//   200: Participant
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	device, err := handler.GetDeviceFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	participant, err := h.participantService.ConsumeShot(c.Request.Context(), id, device.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, participant)
}
