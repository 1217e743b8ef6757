package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/snap-party/snapparty/pkg/model"
)

func GetDeviceFromContext(c *gin.Context) (model.Device, error) {
	deviceData, exists := c.Get("device")

	if !exists {
		return model.Device{}, errors.New("device not found on context")
	}

	device, ok := deviceData.(model.Device)
	if !ok {
		return model.Device{}, errors.New("failed to parse device data")
	}
	return device, nil
}
