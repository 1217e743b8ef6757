package inttest

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/localstack"
	"github.com/stretchr/testify/require"
)

// SetupS3 creates an S3 container (using localstack) with the given bucket.
func SetupS3(t *testing.T, bucket string) *S3 {
	t.Helper()

	container, err := gnomock.Start(
		localstack.Preset(
			localstack.WithServices(localstack.S3),
			localstack.WithVersion("2.1.0"),
		),
	)
	require.NoError(t, err, "failed to start S3")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop S3") })

	region := "eu-west-1"
	client := s3.NewFromConfig(
		aws.Config{
			Region: region,
			EndpointResolverWithOptions: aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:           fmt.Sprintf("http://%s/", container.Address(localstack.APIPort)),
					SigningRegion: region,
				}, nil
			}),
		},
		func(o *s3.Options) {
			o.UsePathStyle = true
		},
	)

	_, err = client.CreateBucket(context.TODO(), &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	require.NoError(t, err, "failed to create bucket")

	return &S3{Client: client, Uploader: manager.NewUploader(client)}
}

// S3 allows making requests to S3. Access the actual s3.Client for specific use cases where our
// defaults don't work.
type S3 struct {
	Client   *s3.Client
	Uploader *manager.Uploader
}

func (sc *S3) GetObject(t *testing.T, bucket, key string) []byte {
	t.Helper()

	object, err := sc.Client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	require.NoErrorf(t, err, "failed to get object %q from bucket %q", key, bucket)
	defer func() {
		require.NoError(t, object.Body.Close(), "failed to close object body")
	}()

	data, err := io.ReadAll(object.Body)
	require.NoError(t, err, "failed to read object body")
	return data
}
