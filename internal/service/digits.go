package service

import "strings"

// NormalizeDigits maps Eastern Arabic and Extended Arabic-Indic digits to
// their ASCII equivalents. File numbers arrive from keyboards in either
// script and must compare equal.
func NormalizeDigits(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩': // U+0660..U+0669
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹': // U+06F0..U+06F9
			b.WriteRune('0' + (r - '۰'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
