package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup from free-text input and trims surrounding space.
// StrictPolicy escapes entities, so they are unescaped back to plain text.
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
