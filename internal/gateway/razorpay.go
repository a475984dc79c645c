// Package gateway wraps the Razorpay SDK behind the one call the checkout
// pipeline needs.
package gateway

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator opens a gateway order for an amount and returns its handle.
// The checkout services depend on this interface so tests can stub the
// gateway out.
type OrderCreator interface {
	CreateOrder(amountPaise int64, receipt, email string) (string, error)
}

type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, secret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, secret)}
}

// CreateOrder opens a Razorpay order for amountPaise (the gateway's minor
// currency unit) and returns the gateway order handle.
func (g *Razorpay) CreateOrder(amountPaise int64, receipt, email string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
		"notes":    map[string]interface{}{"email": email},
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order create: malformed response")
	}
	return id, nil
}
