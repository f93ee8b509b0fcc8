package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tabadul/internal/domain/service"
	"tabadul/pkg/logger"
)

// MinioStorageClient is the self-hosted alternative to Firebase Storage.
type MinioStorageClient struct {
	client *minio.Client
	bucket string
}

func NewMinioStorageClient(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinioStorageClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket %s: %w", bucketName, err)
		}
		logger.Info("Created storage bucket %s", bucketName)
	}

	return &MinioStorageClient{
		client: client,
		bucket: bucketName,
	}, nil
}

var _ service.ObjectStorage = (*MinioStorageClient)(nil)

func (c *MinioStorageClient) PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	info, err := c.client.PutObject(ctx, c.bucket, key, body, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, c.bucket, err)
	}

	logger.Debug("Stored object %s (%d bytes, etag %s)", info.Key, info.Size, info.ETag)

	return fmt.Sprintf("%s/%s/%s", c.client.EndpointURL().String(), c.bucket, key), nil
}

// Close is a no-op; the minio client holds no long-lived connections.
func (c *MinioStorageClient) Close() error {
	return nil
}
