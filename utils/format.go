package utils

import (
	"fmt"
	"strings"
)

// Compact renders a large count with a magnitude suffix: 2150000000 ->
// "2.15B". Values under a thousand print as-is.
func Compact(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	var s string
	switch {
	case v >= 1e12:
		s = fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		s = fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		s = fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		s = fmt.Sprintf("%.2fK", v/1e3)
	default:
		s = fmt.Sprintf("%.0f", v)
	}
	if neg {
		s = "-" + s
	}
	return s
}

// INR renders an amount in rupees with a magnitude suffix: "₹1.23T".
func INR(v float64) string {
	return "₹" + Compact(v)
}

// Comma groups an integer with thousands separators.
func Comma(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}
	if neg {
		s = "-" + s
	}
	return s
}
