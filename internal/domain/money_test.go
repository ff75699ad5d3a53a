package domain

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{100, "100.00"},
		{10.5, "10.50"},
		{0, "0.00"},
		{-15, "-15.00"},
		{1234.567, "1234.57"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{7, "007"},
		{150, "150"},
		{12345, "12345"},
	}
	for _, c := range cases {
		if got := FormatInvoiceNumber(c.in); got != c.want {
			t.Errorf("FormatInvoiceNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.50", 12.5},
		{" 3 ", 3},
		{"", 0},
		{"abc", 0},
		{"12,50", 0},
		{"NaN", 0},
		{"-4.25", -4.25},
	}
	for _, c := range cases {
		if got := ParseAmount(c.in); got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
