package leads

import (
	"strings"
	"unicode"
)

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders 10 or 11 digit numbers as (DD) DDDD-DDDD or
// (DD) DDDDD-DDDD. Anything else is returned untouched.
func FormatPhone(raw string) string {
	d := Digits(raw)

	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return raw
	}
}
