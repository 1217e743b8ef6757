package device

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snap-party/snapparty/internal/handler"
	"github.com/snap-party/snapparty/pkg/model"
	"github.com/snap-party/snapparty/pkg/token"
)

func NewHandler(tokenService TokenService) Handler {
	return Handler{tokenService}
}

type Handler struct {
	tokenService TokenService
}

type TokenService interface {
	IssueSession(device model.Device) (*token.Session, error)
}

type RegisterRequest struct {
	// DeviceID is optional. A device that registered before sends its known id
	// so the new session keeps its participant records reachable.
	DeviceID string `json:"deviceId" binding:"omitempty,uuid"`
}

type RegisterResponse struct {
	DeviceID string        `json:"deviceId"`
	Session  token.Session `json:"session"`
}

// Register device
func (h Handler) Register(c *gin.Context) {
	// swagger:route POST /devices registerDevice
	//
	// Register device
	//
	// Register an anonymous device and receive a session token. There is no
	// account; the device id is the only identity.
	//
	// responses:
	//   201: RegisterResponse
	//   400: Error
	//   415: Error
	var request RegisterRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	deviceID := request.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	session, err := h.tokenService.IssueSession(model.Device{ID: deviceID})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		DeviceID: deviceID,
		Session:  *session,
	})
}
