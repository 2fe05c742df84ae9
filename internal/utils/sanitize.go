package utils

import "strings"

// The ampersand must be escaped first or it would double-escape the
// entities produced by the later replacements.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// SanitizeInput HTML-entity-escapes user supplied strings before they
// are persisted, so later rendering contexts that skip escaping cannot
// be injected into.
func SanitizeInput(input string) string {
	return htmlEscaper.Replace(input)
}
