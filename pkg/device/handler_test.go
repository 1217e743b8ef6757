package device

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snap-party/snapparty/internal/middleware"
	"github.com/snap-party/snapparty/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Register_GeneratesDeviceID(t *testing.T) {
	response := register(t, `{}`)

	require.Equal(t, http.StatusCreated, response.Code)
	var body RegisterResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	_, err := uuid.Parse(body.DeviceID)
	assert.NoError(t, err, "server assigns a uuid when the device sends none")
	assert.NotEmpty(t, body.Session.AccessToken)
	assert.Equal(t, "bearer", body.Session.TokenType)
}

func TestHandler_Register_KeepsKnownDeviceID(t *testing.T) {
	deviceID := uuid.NewString()

	response := register(t, `{"deviceId": "`+deviceID+`"}`)

	require.Equal(t, http.StatusCreated, response.Code)
	var body RegisterResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Equal(t, deviceID, body.DeviceID)
}

func TestHandler_Register_RejectsMalformedDeviceID(t *testing.T) {
	response := register(t, `{"deviceId": "not-a-uuid"}`)

	require.Equal(t, http.StatusBadRequest, response.Code)
}

func register(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	tokenService := token.NewService(slog.Default(), "test-secret-key", 3600)
	handler := NewHandler(tokenService)
	engine.POST("/devices", handler.Register)

	request := httptest.NewRequest(http.MethodPost, "/devices", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	response := httptest.NewRecorder()
	engine.ServeHTTP(response, request)
	return response
}
