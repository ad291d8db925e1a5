package helpers

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases. Applied at
// every write and lookup so case or padding differences never split an
// account in two.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeAnswer canonicalizes a security answer before hashing or
// comparing, so "Rex " and "rex" verify as the same answer.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
