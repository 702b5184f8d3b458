package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dir is the namespace a file is stored under.
type Dir string

const (
	DirAvatar       Dir = "avatar"
	DirUploads      Dir = "uploads"
	DirVideos       Dir = "videos"
	DirCertificates Dir = "certificates"
)

// FileStore persists uploaded files and hands back the reference saved on the row.
type FileStore interface {
	Save(ctx context.Context, dir Dir, originalName string, r io.Reader) (string, error)
	// Delete removes the file behind ref. References the store does not own are ignored.
	Delete(ctx context.Context, ref string) error
	Owns(ref string) bool
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// objectName builds "<base>-<unix ms>-<8 hex><ext>" from an uploaded file name.
func objectName(dir Dir, originalName string, now time.Time) string {
	name := filepath.Base(strings.ReplaceAll(strings.TrimSpace(originalName), "\\", "/"))
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._-")
	if len(base) > 64 {
		base = base[:64]
	}
	if base == "" {
		base = string(dir)
	}
	ext = unsafeChars.ReplaceAllString(ext, "")
	return fmt.Sprintf("%s-%d-%s%s", base, now.UnixMilli(), uuid.NewString()[:8], ext)
}
