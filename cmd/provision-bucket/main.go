package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Creates the photo bucket on a local MinIO so the backend can be run without
// AWS. Point the backend at MinIO using the usual AWS endpoint environment
// variables.
func main() {
	endpoint := flag.String("endpoint", "localhost:9000", "MinIO endpoint")
	accessKey := flag.String("access-key", "snapsnap", "MinIO access key")
	secretKey := flag.String("secret-key", "snapsnap", "MinIO secret key")
	bucket := flag.String("bucket", "snapparty-photos", "bucket to create")
	region := flag.String("region", "eu-west-1", "bucket region")
	useSSL := flag.Bool("ssl", false, "use SSL")
	flag.Parse()

	ctx := context.Background()

	client, err := setupMinioClient(*accessKey, *secretKey, *endpoint, *useSSL)
	if err != nil {
		log.Fatalf("minio client setup: %v", err)
	}

	exists, err := client.BucketExists(ctx, *bucket)
	if err != nil {
		log.Fatalf("bucket lookup: %v", err)
	}
	if exists {
		log.Printf("bucket %q already exists", *bucket)
		return
	}

	err = client.MakeBucket(ctx, *bucket, minio.MakeBucketOptions{Region: *region})
	if err != nil {
		log.Fatalf("bucket creation: %v", err)
	}
	log.Printf("created bucket %q", *bucket)
}

func setupMinioClient(accessKey, secretKey, endpoint string, useSSL bool) (*minio.Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %v", err)
	}
	return minioClient, nil
}
