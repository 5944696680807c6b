package model

import "strings"

// NormalizeRUT strips dots and spaces and upper-cases the check digit,
// so "12.345.678-k" becomes "12345678-K".
func NormalizeRUT(s string) string {
	s = strings.ToUpper(strings.NewReplacer(".", "", " ", "").Replace(strings.TrimSpace(s)))
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "-") && len(s) > 1 {
		s = s[:len(s)-1] + "-" + s[len(s)-1:]
	}
	return s
}

// ValidRUT verifies the modulo 11 check digit of a normalized RUT.
func ValidRUT(s string) bool {
	body, dv, ok := strings.Cut(s, "-")
	if !ok || body == "" || len(dv) != 1 || len(body) > 9 {
		return false
	}

	sum, factor := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}

	var want byte
	switch r := 11 - sum%11; r {
	case 11:
		want = '0'
	case 10:
		want = 'K'
	default:
		want = byte('0' + r)
	}
	return dv[0] == want
}
