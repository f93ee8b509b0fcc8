package service

import (
	"context"
	"io"
)

// ObjectStorage writes binary objects under a caller-chosen key and returns a
// publicly resolvable URL for the stored object.
type ObjectStorage interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Close() error
}
