package photo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
)

// MaxPhotoSize is the upload limit for a single capture.
const MaxPhotoSize = 10 << 20 // 10MB

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, s3Bucket string, s3Client S3Client, eventService eventService, repository Repository, publisher Publisher) *service {
	return &service{
		logger:       logger,
		s3Bucket:     s3Bucket,
		s3Client:     s3Client,
		eventService: eventService,
		repository:   repository,
		publisher:    publisher,
	}
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type Repository interface {
	Create(ctx context.Context, photo *model.Photo) error
	FindById(ctx context.Context, id uint) (*model.Photo, error)
	FindByEvent(ctx context.Context, eventID uint) ([]model.Photo, error)
}

type S3Client interface {
	Upload(ctx context.Context, bucket string, key string, contentType string, body io.Reader) error
	Download(ctx context.Context, bucket string, key string, dst io.Writer, cb func(contentLength int64)) error
	Delete(ctx context.Context, bucket string, key string) error
}

type Publisher interface {
	PublishPhotoAdded(photo model.Photo)
}

type service struct {
	logger       *slog.Logger
	s3Bucket     string
	s3Client     S3Client
	eventService eventService
	repository   Repository
	publisher    Publisher
}

// Upload stores the image blob and creates the photo record. The record only
// exists once the blob is durably stored; if the record itself cannot be
// created the blob is deleted again, best effort.
func (s service) Upload(ctx context.Context, eventID uint, userID string, fileName string, contentType string, size int64, reader io.Reader) (*model.Photo, error) {
	contentType, err := normalizeContentType(contentType)
	if err != nil {
		return nil, err
	}

	if size > MaxPhotoSize {
		return nil, errdef.NewBadRequest("photo exceeds the %d byte limit", MaxPhotoSize)
	}

	if _, err := s.eventService.FindById(ctx, eventID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("events/%d/%s%s", eventID, uuid.NewString(), extension(fileName, contentType))
	err = s.s3Client.Upload(ctx, s.s3Bucket, key, contentType, reader)
	if err != nil {
		return nil, err
	}

	photo := &model.Photo{
		EventID:     eventID,
		UserID:      userID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		ObjectKey:   key,
	}

	err = s.repository.Create(ctx, photo)
	if err != nil {
		if deleteErr := s.s3Client.Delete(ctx, s.s3Bucket, key); deleteErr != nil {
			s.logger.ErrorContext(ctx, "Failed to delete orphaned photo blob", "key", key, "error", deleteErr)
		}
		return nil, err
	}

	s.publisher.PublishPhotoAdded(*photo)

	return photo, nil
}

func (s service) FindById(ctx context.Context, id uint) (*model.Photo, error) {
	return s.repository.FindById(ctx, id)
}

// FindByEvent returns the event's full photo list, newest first.
func (s service) FindByEvent(ctx context.Context, eventID uint) ([]model.Photo, error) {
	return s.repository.FindByEvent(ctx, eventID)
}

// Download streams the photo's image. A non-empty variant selects a thumbnail
// size, which is resized on the fly from the original.
func (s service) Download(ctx context.Context, id uint, variant string, dst io.Writer, cb func(contentLength int64)) error {
	photo, err := s.repository.FindById(ctx, id)
	if err != nil {
		return err
	}

	if variant == "" {
		return s.s3Client.Download(ctx, s.s3Bucket, photo.ObjectKey, dst, cb)
	}

	return s.downloadThumbnail(ctx, photo, variant, dst, cb)
}

func normalizeContentType(contentType string) (string, error) {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return "image/jpeg", nil
	case "image/png":
		return "image/png", nil
	}
	return "", errdef.NewUnsupportedMediaType("photos must be image/jpeg or image/png, got %q", contentType)
}

func extension(fileName string, contentType string) string {
	if ext := path.Ext(fileName); ext != "" {
		return ext
	}
	if contentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}
