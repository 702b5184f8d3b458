package razorpay

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	rzp "github.com/razorpay/razorpay-go"

	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/envutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

var ErrNotConfigured = errors.New("missing RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET")

// Client creates gateway orders. Signature checks live in VerifySignature and
// need only the key secret.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	KeyID() string
}

type Config struct {
	KeyID     string
	KeySecret string
}

func ConfigFromEnv(log *logger.Logger) Config {
	return Config{
		KeyID:     envutil.String("RAZORPAY_KEY_ID", "", log),
		KeySecret: envutil.String("RAZORPAY_KEY_SECRET", "", log),
	}
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.KeyID = strings.TrimSpace(cfg.KeyID)
	cfg.KeySecret = strings.TrimSpace(cfg.KeySecret)
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrNotConfigured
	}
	return &client{
		log: log.With("client", "RazorpayClient"),
		cfg: cfg,
		sdk: rzp.NewClient(cfg.KeyID, cfg.KeySecret),
	}, nil
}

type client struct {
	log *logger.Logger
	cfg Config
	sdk *rzp.Client
}

// CreateOrderRequest.Amount is in minor units (paise for INR).
type CreateOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID         string
	Amount     int64
	AmountPaid int64
	Currency   string
	Receipt    string
	Status     string
}

func (c *client) KeyID() string { return c.cfg.KeyID }

func (c *client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("razorpay: amount must be positive")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return nil, fmt.Errorf("razorpay: currency required")
	}
	// The SDK call is not cancellable; bail out before it if the request is gone.
	if err := ctxutil.Default(ctx).Err(); err != nil {
		return nil, err
	}

	body, err := c.sdk.Order.Create(orderPayload(req), nil)
	if err != nil {
		c.log.Warn("Razorpay order create failed", "receipt", req.Receipt, "error", err)
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	return orderFromBody(body)
}

func orderPayload(req CreateOrderRequest) map[string]interface{} {
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}
	if len(req.Notes) > 0 {
		notes := make(map[string]interface{}, len(req.Notes))
		for k, v := range req.Notes {
			notes[k] = v
		}
		data["notes"] = notes
	}
	return data
}

// orderFromBody reads the decoded JSON order entity the SDK hands back.
func orderFromBody(body map[string]interface{}) (*Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay: order response missing id")
	}
	out := &Order{ID: id}
	out.Amount = int64Field(body, "amount")
	out.AmountPaid = int64Field(body, "amount_paid")
	out.Currency, _ = body["currency"].(string)
	out.Receipt, _ = body["receipt"].(string)
	out.Status, _ = body["status"].(string)
	return out, nil
}

func int64Field(body map[string]interface{}, key string) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(math.Round(v))
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
