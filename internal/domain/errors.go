package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the checkout pipeline. Handlers map these to HTTP
// status codes; the response body is always {success:false, error}.
var (
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidSignature   = errors.New("Invalid Payment Signature")
	ErrWriteFailure       = errors.New("order write failed")
	ErrNotFound           = errors.New("not found")
)

// UnavailableError names the missing product the way the storefront surfaces
// it. errors.Is(err, ErrProductUnavailable) matches.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Product %s unavailable", e.Name)
}

func (e *UnavailableError) Is(target error) bool { return target == ErrProductUnavailable }

// StockError reports how many units are actually left.
// errors.Is(err, ErrInsufficientStock) matches.
type StockError struct {
	Name string
	Have int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock: %s (only %d left)", e.Name, e.Have)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }
