package razorpay

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/razorpay/razorpaytest"
)

func TestNewRequiresKeys(t *testing.T) {
	if _, err := New(logger.Nop(), Config{KeyID: "rzp_test_key"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	c, err := New(logger.Nop(), Config{KeyID: " rzp_test_key ", KeySecret: "secret"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.KeyID() != "rzp_test_key" {
		t.Fatalf("KeyID mismatch: %q", c.KeyID())
	}
}

func TestCreateOrderRejectsBadInputBeforeCallingGateway(t *testing.T) {
	c, err := New(logger.Nop(), Config{KeyID: "k", KeySecret: "s"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.CreateOrder(context.Background(), CreateOrderRequest{Amount: 0, Currency: "INR"}); err == nil {
		t.Fatalf("zero amount accepted")
	}
	if _, err := c.CreateOrder(context.Background(), CreateOrderRequest{Amount: 100}); err == nil {
		t.Fatalf("missing currency accepted")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.CreateOrder(ctx, CreateOrderRequest{Amount: 100, Currency: "INR"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrderPayload(t *testing.T) {
	data := orderPayload(CreateOrderRequest{
		Amount:   4999,
		Currency: "INR",
		Receipt:  "receipt_1",
		Notes:    map[string]string{"course_id": "c1"},
	})
	if data["amount"] != int64(4999) || data["currency"] != "INR" || data["receipt"] != "receipt_1" {
		t.Fatalf("unexpected payload: %+v", data)
	}
	notes, ok := data["notes"].(map[string]interface{})
	if !ok || notes["course_id"] != "c1" {
		t.Fatalf("notes not carried: %+v", data["notes"])
	}
	if _, ok := orderPayload(CreateOrderRequest{Amount: 1, Currency: "INR"})["notes"]; ok {
		t.Fatalf("empty notes should be omitted")
	}
}

func TestOrderFromBody(t *testing.T) {
	o, err := orderFromBody(map[string]interface{}{
		"id":          "order_abc",
		"entity":      "order",
		"amount":      float64(4999),
		"amount_paid": float64(0),
		"currency":    "INR",
		"receipt":     "receipt_1",
		"status":      "created",
	})
	if err != nil {
		t.Fatalf("orderFromBody: %v", err)
	}
	if o.ID != "order_abc" || o.Amount != 4999 || o.Currency != "INR" || o.Receipt != "receipt_1" || o.Status != "created" {
		t.Fatalf("unexpected order: %+v", o)
	}
	if _, err := orderFromBody(map[string]interface{}{"amount": float64(1)}); err == nil {
		t.Fatalf("missing id accepted")
	}
}

func TestVerifySignature(t *testing.T) {
	sig := razorpaytest.Sign("secret", "order_1", "pay_1")
	if !VerifySignature("secret", "order_1", "pay_1", sig) {
		t.Fatalf("valid signature rejected")
	}
	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	if VerifySignature("secret", "order_1", "pay_1", string(tampered)) {
		t.Fatalf("tampered signature accepted")
	}
	if VerifySignature("secret", "order_1", "pay_2", sig) {
		t.Fatalf("signature for another payment accepted")
	}
	if VerifySignature("", "order_1", "pay_1", sig) {
		t.Fatalf("empty secret must never verify")
	}
}
