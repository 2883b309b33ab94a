// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

// FormatMoney formats an amount with digit grouping and two decimals.
// e.g., 1234.5 -> "$1,234.50", -89.99 -> "-$89.99"
func FormatMoney(v decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "$"
	}

	s := v.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	out := currency + groupDigits(intPart) + "." + fracPart
	if v.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatMoneyCompact abbreviates an amount for tight spaces.
// e.g., 1234 -> "$1.2K", 1234567 -> "$1.2M", 847 -> "$847"
func FormatMoneyCompact(v decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "$"
	}

	f, _ := v.Abs().Float64()
	var s string
	switch {
	case f >= 1_000_000_000:
		s = fmt.Sprintf("%.1fB", f/1_000_000_000)
	case f >= 1_000_000:
		s = fmt.Sprintf("%.1fM", f/1_000_000)
	case f >= 1_000:
		s = fmt.Sprintf("%.1fK", f/1_000)
	default:
		s = v.Abs().StringFixed(0)
	}

	if v.IsNegative() {
		return "-" + currency + s
	}
	return currency + s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatRunway renders monthly runway to one decimal, "unbounded" when
// expenses never occur in the projection.
func FormatRunway(months *decimal.Decimal) string {
	if months == nil {
		return "unbounded"
	}
	return months.StringFixed(1) + " months"
}

// FormatDangerDays renders days-until-danger, "∞" when the projected
// balance never goes negative.
func FormatDangerDays(days *int) string {
	if days == nil {
		return "∞"
	}
	return strconv.Itoa(*days)
}

// FormatTrend renders a balance trend with a direction arrow.
func FormatTrend(v decimal.Decimal, currency string) string {
	switch {
	case v.IsPositive():
		return "↑ " + FormatMoney(v, currency)
	case v.IsNegative():
		return "↓ " + FormatMoney(v.Abs(), currency)
	default:
		return "→ " + FormatMoney(v, currency)
	}
}

// FormatDate renders a date for display, e.g. "Jul 09, 2025".
func FormatDate(d model.Date) string {
	return d.Format("Jan 02, 2006")
}

// FormatProbability renders a 0-100 probability as a percent string.
func FormatProbability(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatDuration formats seconds into a human-readable duration.
// e.g., 3725 -> "1h 2m", 125 -> "2m", 45 -> "45s"
func FormatDuration(secs int64) string {
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	mins := (secs % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
