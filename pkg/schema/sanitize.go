package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips any markup from a server-provided display string so it
// can be echoed to a terminal verbatim. Entities are unescaped after
// sanitising because the output is plain text, not HTML.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
