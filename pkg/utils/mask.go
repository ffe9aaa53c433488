package utils

import (
	"strings"
	"unicode"
)

// MaskEmail keeps the first and last character of the local part.
//
//	"user@example.com" -> "u**r@example.com"
//	"ab@example.com"   -> "a*@example.com"
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return maskMiddle(email)
	}
	return maskMiddle(email[:at]) + email[at:]
}

// MaskPhone hides every digit but the last four, keeping punctuation.
//
//	"(11) 98765-4321" -> "(**) *****-4321"
func MaskPhone(phone string) string {
	runes := []rune(strings.TrimSpace(phone))

	seen := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsDigit(runes[i]) {
			seen++
			if seen > 4 {
				runes[i] = '*'
			}
		}
	}
	return string(runes)
}

func maskMiddle(s string) string {
	runes := []rune(s)
	switch n := len(runes); {
	case n < 2:
		return s
	case n == 2:
		return string(runes[0]) + "*"
	default:
		return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
	}
}
