package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in       string
		currency string
		want     string
	}{
		{"0", "$", "$0.00"},
		{"1234.5", "$", "$1,234.50"},
		{"-89.99", "$", "-$89.99"},
		{"1000000", "$", "$1,000,000.00"},
		{"999.999", "$", "$1,000.00"},
		{"42", "€", "€42.00"},
		{"42", "", "$42.00"},
	}

	for _, tc := range cases {
		if got := FormatMoney(decimal.RequireFromString(tc.in), tc.currency); got != tc.want {
			t.Errorf("FormatMoney(%s, %q) = %q, want %q", tc.in, tc.currency, got, tc.want)
		}
	}
}

func TestFormatMoneyCompact(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"847", "$847"},
		{"1234", "$1.2K"},
		{"-1234", "-$1.2K"},
		{"1234567", "$1.2M"},
		{"2500000000", "$2.5B"},
	}

	for _, tc := range cases {
		if got := FormatMoneyCompact(decimal.RequireFromString(tc.in), "$"); got != tc.want {
			t.Errorf("FormatMoneyCompact(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}

	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRunway(t *testing.T) {
	if got := FormatRunway(nil); got != "unbounded" {
		t.Errorf("FormatRunway(nil) = %q, want unbounded", got)
	}

	v := decimal.RequireFromString("3.25")
	if got := FormatRunway(&v); got != "3.3 months" {
		t.Errorf("FormatRunway(3.25) = %q, want 3.3 months", got)
	}
}

func TestFormatDangerDays(t *testing.T) {
	if got := FormatDangerDays(nil); got != "∞" {
		t.Errorf("FormatDangerDays(nil) = %q, want ∞", got)
	}

	d := 19
	if got := FormatDangerDays(&d); got != "19" {
		t.Errorf("FormatDangerDays(19) = %q, want 19", got)
	}
}

func TestFormatTrend(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"150", "↑ $150.00"},
		{"-20.5", "↓ $20.50"},
		{"0", "→ $0.00"},
	}

	for _, tc := range cases {
		if got := FormatTrend(decimal.RequireFromString(tc.in), "$"); got != tc.want {
			t.Errorf("FormatTrend(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
