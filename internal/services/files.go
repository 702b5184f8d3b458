package services

import (
	"context"
	"io"

	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/storage"
)

// Upload is a file received with a multipart request.
type Upload struct {
	Name string
	Body io.Reader
}

func saveUpload(ctx context.Context, store storage.FileStore, dir storage.Dir, up *Upload) (string, error) {
	if up == nil {
		return "", nil
	}
	ref, err := store.Save(ctx, dir, up.Name, up.Body)
	if err != nil {
		return "", apierr.Dependency("storage_error", "Failed to store file", err)
	}
	return ref, nil
}

// removeFiles deletes stored files after the owning rows are gone. Failures are
// logged only; the database is already consistent.
func removeFiles(ctx context.Context, log *logger.Logger, store storage.FileStore, refs ...string) {
	for _, ref := range refs {
		if ref == "" || !store.Owns(ref) {
			continue
		}
		if err := store.Delete(ctx, ref); err != nil {
			log.Warn("Failed to delete stored file", "ref", ref, "error", err)
		}
	}
}
