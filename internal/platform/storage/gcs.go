package storage

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/yungbote/coursehub-backend/internal/platform/gcp"
)

// GCSStore keeps files in a GCS bucket and references them by public URL.
type GCSStore struct {
	bucket gcp.BucketService
	now    func() time.Time
}

func NewGCSStore(bucket gcp.BucketService) *GCSStore {
	return &GCSStore{bucket: bucket, now: time.Now}
}

func (s *GCSStore) Save(ctx context.Context, dir Dir, originalName string, r io.Reader) (string, error) {
	key := path.Join(string(dir), objectName(dir, originalName, s.now()))
	if err := s.bucket.UploadFile(ctx, key, r); err != nil {
		return "", err
	}
	return s.bucket.PublicURL(key), nil
}

func (s *GCSStore) Owns(ref string) bool {
	_, ok := s.bucket.KeyFromURL(ref)
	return ok
}

func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	key, ok := s.bucket.KeyFromURL(ref)
	if !ok {
		return nil
	}
	return s.bucket.DeleteFile(ctx, key)
}
