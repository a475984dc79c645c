package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	rePhone   = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCoupon  = regexp.MustCompile(`^[A-Z0-9_-]{3,24}$`)
	reKind    = regexp.MustCompile(`^(product|spot)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Pincode validates a 6-digit Indian postal code.
func Pincode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePincode.MatchString(s)
}

// Phone validates a 10-digit Indian mobile number.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// ID validates a simple resource identifier (product/spot/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Qty clamps an order quantity to 1..20 to avoid abuse.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 20 {
		return 20
	}
	return n
}

func CouponCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", true // coupons are optional
	}
	return s, reCoupon.MatchString(s)
}

// ItemKind validates the review/favorite subject kind.
func ItemKind(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reKind.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Rating clamps a review rating to the 1..5 scale.
func Rating(n int) (int, bool) {
	return n, n >= 1 && n <= 5
}
