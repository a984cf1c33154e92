package utils

import (
	"strconv"
	"strings"
)

// FormatINR formats a whole-rupee amount as a string like "₹12,34,567".
// Uses Indian digit grouping: the last three digits, then groups of two.
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		if neg {
			return "-₹" + s
		}
		return "₹" + s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/2 + 4)
	if neg {
		b.WriteString("-₹")
	} else {
		b.WriteString("₹")
	}

	// Head is everything before the final group of three, grouped in twos.
	head := s[:len(s)-3]
	rem := len(head) % 2
	if rem == 0 {
		rem = 2
	}
	b.WriteString(head[:rem])
	for i := rem; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(s[len(s)-3:])

	return b.String()
}

// ParseINR parses a formatted total like "₹1,234" back to whole rupees.
// Order totals are stored as display strings, so every aggregation re-parses
// them here. Unparseable input degrades to 0 rather than failing.
func ParseINR(s string) int64 {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	n := int64(f)
	if neg {
		n = -n
	}
	return n
}
