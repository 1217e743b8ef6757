package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func NewS3Client(logger *slog.Logger, client AWSS3Client, uploader AWSS3Uploader) *S3Client {
	return &S3Client{
		logger:   logger,
		client:   client,
		uploader: uploader,
	}
}

type S3Client struct {
	logger   *slog.Logger
	client   AWSS3Client
	uploader AWSS3Uploader
}

type AWSS3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type AWSS3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

func (s S3Client) Upload(ctx context.Context, bucket string, key string, contentType string, body io.Reader) error {
	// only use ctx for values (logging) and not cancellation signals. an upload
	// that the backend has started accepting should finish even if the client
	// goes away, otherwise the photo record and the blob can diverge.
	ctx = context.WithoutCancel(ctx)

	s.logger.InfoContext(ctx, "Uploading", "bucket", bucket, "key", key)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("error uploading object to bucket %q using key %q: %s", bucket, key, err)
	}
	return nil
}

func (s S3Client) Download(ctx context.Context, bucket string, key string, dst io.Writer, cb func(contentLength int64)) error {
	object, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error downloading object from bucket %q using key %q: %s", bucket, key, err)
	}

	cb(*object.ContentLength)

	_, err = io.Copy(dst, object.Body)

	return err
}

func (s S3Client) Delete(ctx context.Context, bucket string, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting object from bucket %q using key %q: %s", bucket, key, err)
	}
	return nil
}
