package validate

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"meera@example.com", true},
		{"  meera@example.com  ", true},
		{"meera+saree@shop.co.in", true},
		{"", false},
		{"no-at-sign", false},
		{"a@b", false},
	}
	for _, c := range cases {
		if _, ok := Email(c.in); ok != c.ok {
			t.Fatalf("Email(%q) = %v, want %v", c.in, ok, c.ok)
		}
	}
}

func TestPincodeAndPhone(t *testing.T) {
	if _, ok := Pincode("221001"); !ok {
		t.Fatal("valid pincode rejected")
	}
	for _, bad := range []string{"021001", "2210", "22100a", ""} {
		if _, ok := Pincode(bad); ok {
			t.Fatalf("Pincode(%q) should fail", bad)
		}
	}

	if _, ok := Phone("9876543210"); !ok {
		t.Fatal("valid phone rejected")
	}
	for _, bad := range []string{"1234567890", "98765", ""} {
		if _, ok := Phone(bad); ok {
			t.Fatalf("Phone(%q) should fail", bad)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := ID("saree-001"); !ok {
		t.Fatal("valid id rejected")
	}
	for _, bad := range []string{"", "has space", "semi;colon", "x/../y"} {
		if _, ok := ID(bad); ok {
			t.Fatalf("ID(%q) should fail", bad)
		}
	}
}

func TestQtyClamps(t *testing.T) {
	if Qty(0) != 1 || Qty(-5) != 1 {
		t.Fatal("low qty must clamp to 1")
	}
	if Qty(21) != 20 {
		t.Fatal("high qty must clamp to 20")
	}
	if Qty(3) != 3 {
		t.Fatal("in-range qty must pass through")
	}
}

func TestCouponCode(t *testing.T) {
	if code, ok := CouponCode(" festive10 "); !ok || code != "FESTIVE10" {
		t.Fatalf("got %q, %v", code, ok)
	}
	if _, ok := CouponCode(""); !ok {
		t.Fatal("empty coupon is allowed")
	}
	for _, bad := range []string{"ab", "BAD CODE", "toolongtoolongtoolongtoolong"} {
		if _, ok := CouponCode(bad); ok {
			t.Fatalf("CouponCode(%q) should fail", bad)
		}
	}
}

func TestItemKind(t *testing.T) {
	if kind, ok := ItemKind("Product"); !ok || kind != "product" {
		t.Fatalf("got %q, %v", kind, ok)
	}
	if _, ok := ItemKind("city"); ok {
		t.Fatal("unknown kind should fail")
	}
}

func TestRating(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		if _, ok := Rating(n); !ok {
			t.Fatalf("Rating(%d) should pass", n)
		}
	}
	for _, n := range []int{0, 6, -1} {
		if _, ok := Rating(n); ok {
			t.Fatalf("Rating(%d) should fail", n)
		}
	}
}
