package mail

import "testing"

func TestFormatINR(t *testing.T) {
	cases := []struct {
		paise int64
		want  string
	}{
		{0, "0"},
		{100, "1"},
		{50000, "500"},
		{100000, "1,000"},
		{123456700, "12,34,567"},
		{123456789, "12,34,567.89"},
		{10000000000, "10,00,00,000"},
		{150, "1.50"},
		{-50000, "-500"},
	}
	for _, c := range cases {
		if got := FormatINR(c.paise); got != c.want {
			t.Fatalf("FormatINR(%d) = %q, want %q", c.paise, got, c.want)
		}
	}
}

func TestShortOrderID(t *testing.T) {
	if got := ShortOrderID("order_abc123xyz"); got != "ORDER_AB" {
		t.Fatalf("got %q", got)
	}
	if got := ShortOrderID("cod1"); got != "COD1" {
		t.Fatalf("got %q", got)
	}
}
