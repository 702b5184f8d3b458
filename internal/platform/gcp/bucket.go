package gcp

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

// BucketService stores course assets in one bucket, namespaced by key prefix
// (avatar/, uploads/, videos/, certificates/).
type BucketService interface {
	UploadFile(ctx context.Context, key string, file io.Reader) error
	DeleteFile(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(ref string) (string, bool)
	Close() error
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	cfg           Config
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("resolve gcs config: %w", err)
	}
	return NewBucketServiceWithConfig(log, cfg)
}

func NewBucketServiceWithConfig(log *logger.Logger, cfg Config) (BucketService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	serviceLog := log.With("service", "BucketService")

	client, err := newStorageClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	serviceLog.Info("Object storage initialized",
		"mode", cfg.Mode,
		"bucket", cfg.Bucket,
		"emulator_host", cfg.EmulatorHost,
		"public_base_url", cfg.PublicBaseURL,
	)
	return &bucketService{log: serviceLog, storageClient: client, cfg: cfg}, nil
}

func newStorageClient(ctx context.Context, cfg Config) (*storage.Client, error) {
	if cfg.Mode == ModeGCSEmulator {
		// The storage client picks the emulator endpoint up from the environment.
		_ = os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	}
	opts := ClientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	return storage.NewClient(ctx, opts...)
}

func (bs *bucketService) UploadFile(ctx context.Context, key string, file io.Reader) error {
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), 5*time.Minute)
	defer cancel()

	w := bs.storageClient.Bucket(bs.cfg.Bucket).Object(key).NewWriter(ctx)
	if ct := contentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (bs *bucketService) DeleteFile(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), 30*time.Second)
	defer cancel()
	if err := bs.storageClient.Bucket(bs.cfg.Bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.cfg.Bucket, err)
	}
	return nil
}

func (bs *bucketService) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	switch {
	case bs.cfg.CDNDomain != "":
		return fmt.Sprintf("https://%s/%s", bs.cfg.CDNDomain, key)
	case bs.cfg.Mode == ModeGCSEmulator:
		return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
			bs.emulatorBase(), url.PathEscape(bs.cfg.Bucket), url.PathEscape(key))
	case bs.cfg.PublicBaseURL != "":
		return fmt.Sprintf("%s/%s/%s", bs.cfg.PublicBaseURL, bs.cfg.Bucket, key)
	default:
		return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.cfg.Bucket, key)
	}
}

// KeyFromURL inverts PublicURL. References that do not point into this bucket report false.
func (bs *bucketService) KeyFromURL(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	var prefix string
	switch {
	case bs.cfg.CDNDomain != "":
		prefix = fmt.Sprintf("https://%s/", bs.cfg.CDNDomain)
	case bs.cfg.Mode == ModeGCSEmulator:
		prefix = fmt.Sprintf("%s/storage/v1/b/%s/o/", bs.emulatorBase(), url.PathEscape(bs.cfg.Bucket))
		if !strings.HasPrefix(ref, prefix) {
			return "", false
		}
		escaped := strings.TrimSuffix(strings.TrimPrefix(ref, prefix), "?alt=media")
		key, err := url.PathUnescape(escaped)
		return key, err == nil && key != ""
	case bs.cfg.PublicBaseURL != "":
		prefix = fmt.Sprintf("%s/%s/", bs.cfg.PublicBaseURL, bs.cfg.Bucket)
	default:
		prefix = fmt.Sprintf("https://storage.googleapis.com/%s/", bs.cfg.Bucket)
	}
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(ref, prefix)
	return key, key != ""
}

func (bs *bucketService) emulatorBase() string {
	if bs.cfg.PublicBaseURL != "" {
		return bs.cfg.PublicBaseURL
	}
	return bs.cfg.EmulatorHost
}

func (bs *bucketService) Close() error {
	if bs == nil || bs.storageClient == nil {
		return nil
	}
	return bs.storageClient.Close()
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	case strings.HasSuffix(s, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(s, ".mp4"), strings.HasSuffix(s, ".m4v"):
		return "video/mp4"
	case strings.HasSuffix(s, ".webm"):
		return "video/webm"
	case strings.HasSuffix(s, ".mov"):
		return "video/quicktime"
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	default:
		return ""
	}
}
