package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber normalizes a phone number for storage: strips all
// non-digit characters, drops leading zeros and prefixes the given
// country calling code when it is not already present.
func FormatPhoneNumber(phoneNumber, countryCode string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")
	code := nonDigits.ReplaceAllString(countryCode, "")

	if digits == "" {
		return ""
	}
	if code != "" && !strings.HasPrefix(digits, code) {
		digits = code + strings.TrimLeft(digits, "0")
	}
	return digits
}

// ValidatePhoneNumber accepts national numbers of 6 to 14 digits.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")
	return len(cleaned) >= 6 && len(cleaned) <= 14
}
