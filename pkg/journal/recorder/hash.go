package recorder

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"
)

// HashSource returns the hex-encoded SHA-256 of the source text, or an empty
// string for empty input.
func HashSource(source string) string {
	if source == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// TruncateSource shortens s to at most max bytes without splitting a UTF-8
// sequence. A max of 0 or less disables truncation.
func TruncateSource(s string, max int) (string, bool) {
	if max <= 0 || len(s) <= max {
		return s, false
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}
