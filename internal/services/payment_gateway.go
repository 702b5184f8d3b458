package services

import (
	"context"

	"github.com/yungbote/coursehub-backend/internal/platform/razorpay"
)

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentGateway creates remote orders and authenticates payment confirmations.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type razorpayGateway struct {
	client razorpay.Client
	secret string
}

func NewRazorpayGateway(client razorpay.Client, keySecret string) PaymentGateway {
	return &razorpayGateway{client: client, secret: keySecret}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	o, err := g.client.CreateOrder(ctx, razorpay.CreateOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, err
	}
	return &GatewayOrder{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
		Status:   o.Status,
	}, nil
}

func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return razorpay.VerifySignature(g.secret, orderID, paymentID, signature)
}

func (g *razorpayGateway) KeyID() string { return g.client.KeyID() }
