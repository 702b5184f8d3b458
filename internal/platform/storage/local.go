package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

// LocalStore writes files below Root and references them as URLPrefix/<dir>/<name>,
// which the router serves statically.
type LocalStore struct {
	log       *logger.Logger
	root      string
	urlPrefix string
	now       func() time.Time
}

func NewLocalStore(log *logger.Logger, root, urlPrefix string) (*LocalStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage root required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	for _, d := range []Dir{DirAvatar, DirUploads, DirVideos, DirCertificates} {
		if err := os.MkdirAll(filepath.Join(abs, string(d)), 0o755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", d, err)
		}
	}
	if urlPrefix == "" {
		urlPrefix = "/assets"
	}
	return &LocalStore{
		log:       log.With("store", "LocalStore"),
		root:      abs,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Save(ctx context.Context, dir Dir, originalName string, r io.Reader) (string, error) {
	name := objectName(dir, originalName, s.now())
	dst := filepath.Join(s.root, string(dir), name)

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path.Join(s.urlPrefix, string(dir), name), nil
}

func (s *LocalStore) Owns(ref string) bool {
	_, ok := s.pathFor(ref)
	return ok
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	p, ok := s.pathFor(ref)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", ref, err)
	}
	return nil
}

// pathFor maps a reference to a file path inside root, rejecting traversal.
func (s *LocalStore) pathFor(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, s.urlPrefix+"/") {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(ref, s.urlPrefix+"/"))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	p := filepath.Join(s.root, filepath.FromSlash(rel))
	within, err := filepath.Rel(s.root, p)
	if err != nil || strings.HasPrefix(within, "..") {
		return "", false
	}
	return p, true
}
