package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string. Leads are logged
// by the hash of their email so log lines can be correlated without PII.
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// NormalizeEmail lowercases and trims an email. It does not validate it.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
