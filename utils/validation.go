// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var zipRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\- ]{2,9}$`)

// ValidateZip accepts US-style 5-digit codes as well as common international
// postal code formats (3-10 alphanumeric characters, spaces and dashes).
func ValidateZip(zip string) bool {
	return zipRegex.MatchString(strings.TrimSpace(zip))
}

// NormalizeZip trims and uppercases a postal code for lookups.
func NormalizeZip(zip string) string {
	return strings.ToUpper(strings.TrimSpace(zip))
}

// NormalizeEmail lowercases and trims an email for use as a client key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
