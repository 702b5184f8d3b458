package app

import (
	"errors"
	"fmt"

	"github.com/yungbote/coursehub-backend/internal/platform/envutil"
	"github.com/yungbote/coursehub-backend/internal/platform/gcp"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/ratelimit"
	"github.com/yungbote/coursehub-backend/internal/platform/razorpay"
	"github.com/yungbote/coursehub-backend/internal/platform/sendgrid"
	"github.com/yungbote/coursehub-backend/internal/platform/storage"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type Clients struct {
	Mailer   services.Mailer
	Gateway  services.PaymentGateway
	Attempts ratelimit.Counter
	Files    storage.FileStore
	// Bucket is nil unless STORAGE_MODE=gcs.
	Bucket gcp.BucketService
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// SendGrid
	sg, err := sendgrid.New(log, sendgrid.ConfigFromEnv(log))
	switch {
	case errors.Is(err, sendgrid.ErrNotConfigured):
		log.Warn("SendGrid not configured; emails will only be logged")
		out.Mailer = services.NewLoggingMailer(log)
	case err != nil:
		return Clients{}, fmt.Errorf("init sendgrid client: %w", err)
	default:
		out.Mailer = services.NewSendGridMailer(log, sg)
	}

	// Razorpay
	rzCfg := razorpay.ConfigFromEnv(log)
	rz, err := razorpay.New(log, rzCfg)
	if err != nil {
		return Clients{}, fmt.Errorf("init razorpay client: %w", err)
	}
	out.Gateway = services.NewRazorpayGateway(rz, rzCfg.KeySecret)

	// Redis
	if envutil.String("REDIS_ADDR", "", log) != "" {
		counter, err := ratelimit.NewRedisCounter(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis attempt counter: %w", err)
		}
		out.Attempts = counter
	} else {
		log.Warn("REDIS_ADDR not set; OTP attempts are counted in process memory")
		out.Attempts = ratelimit.NewMemoryCounter()
	}

	// Files
	switch cfg.StorageMode {
	case "", StorageLocal:
		local, err := storage.NewLocalStore(log, cfg.AssetsDir, "/assets")
		if err != nil {
			_ = out.Attempts.Close()
			return Clients{}, fmt.Errorf("init local file store: %w", err)
		}
		out.Files = local
	case StorageGCS:
		bucket, err := gcp.NewBucketService(log)
		if err != nil {
			_ = out.Attempts.Close()
			return Clients{}, fmt.Errorf("init bucket client: %w", err)
		}
		out.Bucket = bucket
		out.Files = storage.NewGCSStore(bucket)
	default:
		_ = out.Attempts.Close()
		return Clients{}, fmt.Errorf("unsupported STORAGE_MODE %q", cfg.StorageMode)
	}

	return out, nil
}

func (c Clients) Close() error {
	var errs []error
	if c.Attempts != nil {
		errs = append(errs, c.Attempts.Close())
	}
	if c.Bucket != nil {
		errs = append(errs, c.Bucket.Close())
	}
	return errors.Join(errs...)
}
