package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"mobile", "0501234567", true},
		{"landline", "039876543", true},
		{"with dashes", "050-123-4567", true},
		{"with spaces", "050 123 4567", true},
		{"too short", "123", false},
		{"no leading zero", "501234567", false},
		{"too long", "05012345678", false},
		{"letters", "05O1234567", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPhone(tt.phone))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "0501234567", NormalizePhone("050-123 4567"))
	assert.Equal(t, "0501234567", NormalizePhone("0501234567"))
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"dan@example.com", true},
		{"a@b.co", true},
		{"user+tag@domain.org", true},
		{"no-at-sign", false},
		{"no-domain@", false},
		{"two words@example.com", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", SanitizeInput("<script>"))
	assert.Equal(t, "&amp;lt;", SanitizeInput("&lt;"))
	assert.Equal(t, "a &quot;b&quot; &#x27;c&#x27; &#x2F;d", SanitizeInput(`a "b" 'c' /d`))
	assert.Equal(t, "דן כהן", SanitizeInput("דן כהן"))
}
