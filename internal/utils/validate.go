package utils

import (
	"regexp"
	"strings"
)

var (
	// Israeli phone numbers: leading zero plus 8-9 digits.
	phoneRegex = regexp.MustCompile(`^0\d{8,9}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NormalizePhone strips the dashes and spaces users type into phone
// fields before the pattern check.
func NormalizePhone(phone string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(phone)
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(NormalizePhone(phone))
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
