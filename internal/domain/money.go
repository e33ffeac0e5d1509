package domain

import "github.com/dustin/go-humanize"

// FormatWon renders an amount with thousands separators, e.g. "15,000원".
func FormatWon(amount int) string {
	return humanize.Comma(int64(amount)) + "원"
}

// FormatCount renders a count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
