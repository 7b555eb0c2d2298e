// Package sanitizer normalizes user input before validation and storage.
package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an email address so uniqueness checks
// and lookups compare the same canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSubdomain canonicalizes a tenant subdomain label the same way
// the resolver does: trimmed and lowercased.
func NormalizeSubdomain(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// NormalizePhone strips spaces and dashes from a phone number.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}
