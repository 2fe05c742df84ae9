package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// bindingErrorMessage translates the first validator failure of a bind
// into the Hebrew field message the UI shows, falling back to a
// generic one for malformed payloads.
func bindingErrorMessage(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return msg
		}
	}
	return "בקשה לא תקינה"
}
