package utils

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStorage uploads media to a MinIO/S3 bucket and hands back public URLs.
type BlobStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewBlobStorage connects to the object store and makes sure the bucket
// exists. Missing credentials are reported as ErrProviderUnavailable.
func NewBlobStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, publicURL string) (*BlobStorage, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("blob storage: %w", ErrProviderUnavailable)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", bucket, err)
		}
	}

	return &BlobStorage{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Upload stores the object under key with public-read visibility and returns
// its public URL.
func (b *BlobStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := b.client.PutObject(ctx, b.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("blob upload failed: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", b.publicURL, b.bucket, key), nil
}
