package razorpay

import (
	"github.com/razorpay/razorpay-go/utils"
)

// VerifySignature checks the checkout callback signature,
// HMAC-SHA256(secret, orderID + "|" + paymentID) in hex.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return utils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}, signature, secret)
}
