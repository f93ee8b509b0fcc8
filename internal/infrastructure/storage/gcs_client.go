package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"tabadul/internal/domain/service"
)

const firebaseDownloadTokenKey = "firebaseStorageDownloadTokens"

// CloudStorageClient writes to a Firebase Storage bucket and hands back
// token-based download URLs, the same ones the Firebase web SDK produces.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("storage bucket is not configured")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

var _ service.ObjectStorage = (*CloudStorageClient)(nil)

func (c *CloudStorageClient) PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	token := uuid.New().String()

	obj := c.client.Bucket(c.bucketName).Object(key)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"
	wc.Metadata = map[string]string{firebaseDownloadTokenKey: token}

	if _, err := io.Copy(wc, body); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy %s to bucket: %w", key, err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer for %s: %w", key, err)
	}

	return DownloadURL(c.bucketName, key, token), nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// DownloadURL builds the public Firebase download URL for an object. The
// object path is escaped as a single segment, so "/" becomes %2F.
func DownloadURL(bucket, key, token string) string {
	escaped := strings.ReplaceAll(url.PathEscape(key), "/", "%2F")
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s", bucket, escaped, token)
}
