package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
	"github.com/snap-party/snapparty/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/devices", r.URL.Path)
		var request map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Empty(t, request["deviceId"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(registerResponse{
			DeviceID: "device-1",
			Session:  token.Session{AccessToken: "the-token", TokenType: "bearer", ExpiresIn: 3600},
		})
	}))
	defer server.Close()
	client := New(server.URL)

	deviceID, err := client.Register(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "device-1", deviceID)
	assert.Equal(t, "device-1", client.DeviceID())
}

func TestClient_SendsSessionTokenOnceRegistered(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/devices" {
			_ = json.NewEncoder(w).Encode(registerResponse{
				DeviceID: "device-1",
				Session:  token.Session{AccessToken: "the-token"},
			})
			return
		}
		authorization = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(model.Event{ID: 1})
	}))
	defer server.Close()
	client := New(server.URL)
	_, err := client.Register(context.Background(), "")
	require.NoError(t, err)

	_, err = client.CreateEvent(context.Background(), "Birthday")

	require.NoError(t, err)
	assert.Equal(t, "Bearer the-token", authorization)
}

func TestClient_GetEventByCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/join-code/abc-123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Event{ID: 7, Name: "Birthday", JoinCode: "abc-123"})
	}))
	defer server.Close()
	client := New(server.URL)

	event, err := client.GetEventByCode(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.Equal(t, uint(7), event.ID)
}

func TestClient_UnknownJoinCodeIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("event not found by join code: nope"))
	}))
	defer server.Close()
	client := New(server.URL)

	_, err := client.GetEventByCode(context.Background(), "nope")

	require.True(t, errdef.IsNotFound(err))
}

func TestClient_ConsumeShotExhaustedSurfacesConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/participants/5/shots/consume", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("no shots remaining"))
	}))
	defer server.Close()
	client := New(server.URL)

	_, err := client.ConsumeShot(context.Background(), 5)

	var backendError BackendError
	require.ErrorAs(t, err, &backendError)
	assert.Equal(t, http.StatusConflict, backendError.StatusCode)
	assert.Equal(t, "no shots remaining", backendError.Message)
}

func TestClient_UploadPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/1/photos", r.URL.Path)
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer func(file io.Closer) {
			_ = file.Close()
		}(file)

		assert.Equal(t, "capture.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "img", string(data))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Photo{ID: 9, EventID: 1})
	}))
	defer server.Close()
	client := New(server.URL)

	photo, err := client.UploadPhoto(context.Background(), 1, "capture.jpg", "image/jpeg", strings.NewReader("img"))

	require.NoError(t, err)
	assert.Equal(t, uint(9), photo.ID)
}

func TestClient_PhotoURL(t *testing.T) {
	client := New("http://localhost:8080")

	assert.Equal(t, "http://localhost:8080/photos/3/image", client.PhotoURL(3, ""))
	assert.Equal(t, "http://localhost:8080/photos/3/image?thumb=300x300", client.PhotoURL(3, "300x300"))
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "config", "settings.json"))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, settings.DeviceID, "a never-saved store loads as zero settings")

	err = store.Save(Settings{DeviceID: "device-1", ServerURL: "http://localhost:8080"})
	require.NoError(t, err)

	settings, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "device-1", settings.DeviceID)
	assert.Equal(t, "http://localhost:8080", settings.ServerURL)
}
