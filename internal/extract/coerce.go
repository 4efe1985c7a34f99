// Package extract turns payload fragments into stable records.
//
// Coercions here never fail loudly: malformed upstream text becomes an absent
// value and the record is still produced.
package extract

import (
	"strconv"
	"strings"
)

// ParseInt parses a decimal integer. Surrounding whitespace is ignored and
// anything else malformed reports ok=false.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFloat parses a decimal number, including integers. Non-finite values
// are rejected so they never reach JSON output.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return 0, false
	}
	return f, true
}

// FormatDate rewrites an 8 character YYYYMMDD string as YYYY-MM-DD.
// Any other length is returned unchanged.
func FormatDate(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:]
}
