package ratelimit

import (
	"context"
	"time"
)

// Counter counts attempts per key inside a fixed window that starts at the first hit.
type Counter interface {
	// Hit records one attempt and returns the attempts seen in the current window, this one included.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
	Close() error
}
