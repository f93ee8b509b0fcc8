package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"tabadul/internal/domain/service"
	"tabadul/internal/infrastructure/metrics"
	"tabadul/pkg/errors"
	"tabadul/pkg/logger"
)

const imageKeyPrefix = "postImages/"

// ImageFile is a pending local image waiting to be uploaded.
type ImageFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type AssetUseCase struct {
	storage service.ObjectStorage
	metrics *metrics.Manager
	now     func() time.Time
}

func NewAssetUseCase(storage service.ObjectStorage, m *metrics.Manager) *AssetUseCase {
	return &AssetUseCase{
		storage: storage,
		metrics: m,
		now:     time.Now,
	}
}

func (uc *AssetUseCase) objectKey(name string) string {
	return fmt.Sprintf("%s%d_%s", imageKeyPrefix, uc.now().UnixMilli(), name)
}

// Upload stores one image and returns its public URL.
func (uc *AssetUseCase) Upload(ctx context.Context, file ImageFile) (string, error) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := uc.objectKey(file.Name)
	url, err := uc.storage.PutObject(ctx, key, contentType, file.Body)
	uc.metrics.ObserveUpload(err)
	if err != nil {
		return "", errors.AssetUpload(file.Name, err)
	}

	logger.Debug("Uploaded image %s as %s", file.Name, key)
	return url, nil
}

// UploadAll uploads files one after another in input order; position 0 of the
// result is the cover image. The first failure aborts the rest, and images
// already stored by this call stay in storage.
func (uc *AssetUseCase) UploadAll(ctx context.Context, files []ImageFile) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, f := range files {
		url, err := uc.Upload(ctx, f)
		if err != nil {
			if i > 0 {
				logger.Warn("Image upload aborted after %d stored objects; they are left orphaned", i)
			}
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
