package gallery

import (
	"io"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/snap-party/snapparty/internal/handler"
)

func NewHandler(broker broker) Handler {
	return Handler{broker}
}

type Handler struct {
	broker broker
}

type broker interface {
	Subscribe(eventID uint) (uint64, <-chan Notification)
	Unsubscribe(eventID uint, id uint64)
}

// Stream gallery events
func (h Handler) Stream(c *gin.Context) {
	// swagger:route GET /events/{id}/stream streamGallery
	//
	// Stream gallery events
	//
	// Server-sent events pushed whenever a photo is added to the event
	//
	// responses:
	//   200: Stream
	//   400: Error
	eventID, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	id, channel := h.broker.Subscribe(eventID)
	defer h.broker.Unsubscribe(eventID, id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case notification, open := <-channel:
			if !open {
				return false
			}
			c.Render(-1, sse.Event{Event: notification.Type, Data: notification.Photo})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
