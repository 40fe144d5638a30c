package util

import "time"

// FormatMonth renders a unix timestamp as a compact month readout for
// the position indicator, e.g. "Aug 2025".
func FormatMonth(ts float64) string {
	return time.Unix(int64(ts), 0).Format("Jan 2006")
}

// FormatDay renders a unix timestamp with day precision, e.g.
// "Aug 30, 15:04".
func FormatDay(ts float64) string {
	return time.Unix(int64(ts), 0).Format("Jan 2, 15:04")
}
