package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
	"github.com/snap-party/snapparty/pkg/token"
)

// Client talks to a photo-sharing backend on behalf of one device. It is safe
// for concurrent use once Register has been called.
type Client struct {
	baseURL    string
	httpClient *http.Client

	deviceID    string
	accessToken string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// BackendError is returned for any non-2xx response other than 404, which
// surfaces as errdef.NotFound.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

type registerRequest struct {
	DeviceID string `json:"deviceId,omitempty"`
}

type registerResponse struct {
	DeviceID string        `json:"deviceId"`
	Session  token.Session `json:"session"`
}

// Register obtains a device session. Passing the empty string registers a new
// device; passing a previously returned id keeps the device's participant
// records reachable. The returned id must be persisted by the caller.
func (c *Client) Register(ctx context.Context, deviceID string) (string, error) {
	var response registerResponse
	err := c.do(ctx, http.MethodPost, "/devices", registerRequest{DeviceID: deviceID}, &response)
	if err != nil {
		return "", err
	}

	c.deviceID = response.DeviceID
	c.accessToken = response.Session.AccessToken
	return response.DeviceID, nil
}

// DeviceID returns the id of the registered device, or the empty string
// before Register has been called.
func (c *Client) DeviceID() string {
	return c.deviceID
}

type createEventRequest struct {
	Name string `json:"name"`
}

func (c *Client) CreateEvent(ctx context.Context, name string) (*model.Event, error) {
	var event model.Event
	err := c.do(ctx, http.MethodPost, "/events", createEventRequest{Name: name}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventByCode resolves a scanned join code to its event.
func (c *Client) GetEventByCode(ctx context.Context, code string) (*model.Event, error) {
	var event model.Event
	err := c.do(ctx, http.MethodGet, "/events/join-code/"+code, nil, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

type joinRequest struct {
	UserName string `json:"userName"`
}

func (c *Client) JoinEvent(ctx context.Context, eventID uint, userName string) (*model.Participant, error) {
	var participant model.Participant
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/events/%d/participants", eventID), joinRequest{UserName: userName}, &participant)
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// GetParticipant fetches this device's participant record within an event.
func (c *Client) GetParticipant(ctx context.Context, eventID uint) (*model.Participant, error) {
	var participant model.Participant
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d/participants/%s", eventID, c.deviceID), nil, &participant)
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

type updateShotsRequest struct {
	ShotsRemaining int `json:"shotsRemaining"`
}

func (c *Client) UpdateShotsRemaining(ctx context.Context, participantID uint, shotsRemaining int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/participants/%d/shots", participantID), updateShotsRequest{ShotsRemaining: shotsRemaining}, nil)
}

// ConsumeShot burns one shot. The backend decrements atomically; once the
// allowance is exhausted a BackendError with status 409 is returned.
func (c *Client) ConsumeShot(ctx context.Context, participantID uint) (*model.Participant, error) {
	var participant model.Participant
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/participants/%d/shots/consume", participantID), nil, &participant)
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// UploadPhoto adds an image to the event's gallery. It does not touch the
// shot allowance; call ConsumeShot once the upload is acknowledged.
func (c *Client) UploadPhoto(ctx context.Context, eventID uint, fileName string, contentType string, image io.Reader) (*model.Photo, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+fmt.Sprintf("/events/%d/photos", eventID), &body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var photo model.Photo
	err = c.send(request, &photo)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetEventPhotos fetches the event's full photo list, newest first.
func (c *Client) GetEventPhotos(ctx context.Context, eventID uint) ([]model.Photo, error) {
	var photos []model.Photo
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d/photos", eventID), nil, &photos)
	return photos, err
}

// PhotoURL returns the image download URL of a photo. A non-empty thumb
// variant selects a thumbnail size.
func (c *Client) PhotoURL(photoID uint, thumb string) string {
	url := c.baseURL + fmt.Sprintf("/photos/%d/image", photoID)
	if thumb != "" {
		url += "?thumb=" + thumb
	}
	return url
}

func (c *Client) do(ctx context.Context, method string, path string, requestBody any, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	return c.send(request, responseBody)
}

func (c *Client) send(request *http.Request, responseBody any) error {
	if c.accessToken != "" {
		request.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer func(body io.Closer) {
		_ = body.Close()
	}(response.Body)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		message, _ := io.ReadAll(response.Body)
		if response.StatusCode == http.StatusNotFound {
			return errdef.NewNotFound("%s", string(message))
		}
		return BackendError{StatusCode: response.StatusCode, Message: string(message)}
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
