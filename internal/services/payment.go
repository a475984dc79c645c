package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"pahnawa/internal/domain"
	"pahnawa/internal/metrics"
)

// PaymentVerifier checks the gateway's callback signature. This is the only
// integrity check between an attacker-supplied "payment succeeded" claim and
// the order write.
type PaymentVerifier struct {
	secret []byte
}

func NewPaymentVerifier(secret string) *PaymentVerifier {
	return &PaymentVerifier{secret: []byte(secret)}
}

// Verify recomputes HMAC-SHA256 over "orderID|paymentID" with the server-held
// secret and compares it to the supplied signature in constant time.
func (v *PaymentVerifier) Verify(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		metrics.SignatureFailures.Inc()
		return domain.ErrInvalidSignature
	}
	return nil
}
