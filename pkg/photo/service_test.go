package photo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Upload(t *testing.T) {
	events := &mockEventService{}
	events.On("FindById", mock.Anything, uint(1)).Return(&model.Event{ID: 1}, nil)
	s3Client := &mockS3Client{}
	s3Client.
		On("Upload", mock.Anything, "photos", mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "events/1/") && strings.HasSuffix(key, ".jpg")
		}), "image/jpeg", mock.Anything).
		Return(nil)
	repository := &mockRepository{}
	repository.
		On("Create", mock.Anything, mock.MatchedBy(func(p *model.Photo) bool {
			return p.EventID == 1 &&
				p.UserID == "device-1" &&
				p.FileName == "capture.jpg" &&
				p.ContentType == "image/jpeg" &&
				p.Size == 3
		})).
		Return(nil)
	publisher := &mockPublisher{}
	publisher.On("PublishPhotoAdded", mock.AnythingOfType("model.Photo"))
	service := NewService(slog.Default(), "photos", s3Client, events, repository, publisher)

	photo, err := service.Upload(context.Background(), 1, "device-1", "capture.jpg", "image/jpeg", 3, strings.NewReader("img"))

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", photo.ContentType)
	s3Client.AssertExpectations(t)
	repository.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestService_Upload_NormalizesJpgContentType(t *testing.T) {
	events := &mockEventService{}
	events.On("FindById", mock.Anything, uint(1)).Return(&model.Event{ID: 1}, nil)
	s3Client := &mockS3Client{}
	s3Client.On("Upload", mock.Anything, "photos", mock.Anything, "image/jpeg", mock.Anything).Return(nil)
	repository := &mockRepository{}
	repository.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher := &mockPublisher{}
	publisher.On("PublishPhotoAdded", mock.Anything)
	service := NewService(slog.Default(), "photos", s3Client, events, repository, publisher)

	photo, err := service.Upload(context.Background(), 1, "device-1", "capture.jpg", "image/jpg", 3, strings.NewReader("img"))

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", photo.ContentType)
}

func TestService_Upload_RejectsUnsupportedContentType(t *testing.T) {
	s3Client := &mockS3Client{}
	service := NewService(slog.Default(), "photos", s3Client, &mockEventService{}, &mockRepository{}, &mockPublisher{})

	_, err := service.Upload(context.Background(), 1, "device-1", "clip.gif", "image/gif", 3, strings.NewReader("img"))

	require.True(t, errdef.IsUnsupportedMediaType(err))
	s3Client.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Upload_RejectsOversizedPhoto(t *testing.T) {
	s3Client := &mockS3Client{}
	service := NewService(slog.Default(), "photos", s3Client, &mockEventService{}, &mockRepository{}, &mockPublisher{})

	_, err := service.Upload(context.Background(), 1, "device-1", "capture.jpg", "image/jpeg", MaxPhotoSize+1, strings.NewReader("img"))

	require.True(t, errdef.IsBadRequest(err))
	s3Client.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Upload_UnknownEvent(t *testing.T) {
	events := &mockEventService{}
	events.
		On("FindById", mock.Anything, uint(42)).
		Return(nil, errdef.NewNotFound("event not found by id: %d", 42))
	s3Client := &mockS3Client{}
	service := NewService(slog.Default(), "photos", s3Client, events, &mockRepository{}, &mockPublisher{})

	_, err := service.Upload(context.Background(), 42, "device-1", "capture.jpg", "image/jpeg", 3, strings.NewReader("img"))

	require.True(t, errdef.IsNotFound(err))
	s3Client.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Upload_DeletesBlobWhenRecordCreationFails(t *testing.T) {
	events := &mockEventService{}
	events.On("FindById", mock.Anything, uint(1)).Return(&model.Event{ID: 1}, nil)
	s3Client := &mockS3Client{}
	var uploadedKey string
	s3Client.
		On("Upload", mock.Anything, "photos", mock.Anything, "image/jpeg", mock.Anything).
		Run(func(args mock.Arguments) {
			uploadedKey = args.String(2)
		}).
		Return(nil)
	s3Client.
		On("Delete", mock.Anything, "photos", mock.MatchedBy(func(key string) bool {
			return key == uploadedKey
		})).
		Return(nil)
	repository := &mockRepository{}
	repository.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	publisher := &mockPublisher{}
	service := NewService(slog.Default(), "photos", s3Client, events, repository, publisher)

	_, err := service.Upload(context.Background(), 1, "device-1", "capture.jpg", "image/jpeg", 3, strings.NewReader("img"))

	require.Error(t, err)
	s3Client.AssertExpectations(t)
	publisher.AssertNotCalled(t, "PublishPhotoAdded", mock.Anything)
}

func TestService_Download_FullSizeStreamsBlobDirectly(t *testing.T) {
	repository := &mockRepository{}
	repository.
		On("FindById", mock.Anything, uint(7)).
		Return(&model.Photo{ID: 7, ObjectKey: "events/1/a.jpg", ContentType: "image/jpeg"}, nil)
	s3Client := &mockS3Client{}
	s3Client.
		On("Download", mock.Anything, "photos", "events/1/a.jpg", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(4).(func(int64))(3)
			_, _ = args.Get(3).(io.Writer).Write([]byte("img"))
		}).
		Return(nil)
	service := NewService(slog.Default(), "photos", s3Client, &mockEventService{}, repository, &mockPublisher{})

	var dst bytes.Buffer
	var contentLength int64
	err := service.Download(context.Background(), 7, "", &dst, func(length int64) {
		contentLength = length
	})

	require.NoError(t, err)
	assert.Equal(t, "img", dst.String())
	assert.Equal(t, int64(3), contentLength)
}

func TestService_Download_ThumbnailIsResized(t *testing.T) {
	original := image.NewRGBA(image.Rect(0, 0, 1200, 900))
	for x := 0; x < 1200; x++ {
		for y := 0; y < 900; y++ {
			original.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, original))

	repository := &mockRepository{}
	repository.
		On("FindById", mock.Anything, uint(7)).
		Return(&model.Photo{ID: 7, ObjectKey: "events/1/a.png", ContentType: "image/png"}, nil)
	s3Client := &mockS3Client{}
	s3Client.
		On("Download", mock.Anything, "photos", "events/1/a.png", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(3).(io.Writer).Write(encoded.Bytes())
		}).
		Return(nil)
	service := NewService(slog.Default(), "photos", s3Client, &mockEventService{}, repository, &mockPublisher{})

	var dst bytes.Buffer
	var contentLength int64
	err := service.Download(context.Background(), 7, "300x300", &dst, func(length int64) {
		contentLength = length
	})

	require.NoError(t, err)
	assert.Equal(t, int64(dst.Len()), contentLength)
	thumbnail, err := png.Decode(&dst)
	require.NoError(t, err)
	bounds := thumbnail.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 300)
	assert.LessOrEqual(t, bounds.Dy(), 300)
}

func TestService_Download_RejectsUnknownThumbnailVariant(t *testing.T) {
	repository := &mockRepository{}
	repository.
		On("FindById", mock.Anything, uint(7)).
		Return(&model.Photo{ID: 7, ObjectKey: "events/1/a.jpg", ContentType: "image/jpeg"}, nil)
	service := NewService(slog.Default(), "photos", &mockS3Client{}, &mockEventService{}, repository, &mockPublisher{})

	err := service.Download(context.Background(), 7, "9999x9999", io.Discard, func(int64) {})

	require.True(t, errdef.IsBadRequest(err))
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) FindById(ctx context.Context, id uint) (*model.Event, error) {
	called := m.Called(ctx, id)
	event, _ := called.Get(0).(*model.Event)
	return event, called.Error(1)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, photo *model.Photo) error {
	return m.Called(ctx, photo).Error(0)
}

func (m *mockRepository) FindById(ctx context.Context, id uint) (*model.Photo, error) {
	called := m.Called(ctx, id)
	photo, _ := called.Get(0).(*model.Photo)
	return photo, called.Error(1)
}

func (m *mockRepository) FindByEvent(ctx context.Context, eventID uint) ([]model.Photo, error) {
	called := m.Called(ctx, eventID)
	photos, _ := called.Get(0).([]model.Photo)
	return photos, called.Error(1)
}

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) Upload(ctx context.Context, bucket string, key string, contentType string, body io.Reader) error {
	return m.Called(ctx, bucket, key, contentType, body).Error(0)
}

func (m *mockS3Client) Download(ctx context.Context, bucket string, key string, dst io.Writer, cb func(contentLength int64)) error {
	return m.Called(ctx, bucket, key, dst, cb).Error(0)
}

func (m *mockS3Client) Delete(ctx context.Context, bucket string, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishPhotoAdded(photo model.Photo) {
	m.Called(photo)
}
