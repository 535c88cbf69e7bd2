package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// WarningMarker is the CSS class carried by every inline warning, letting
// callers and tests detect degraded output.
const WarningMarker = "nodeview-warning"

var (
	warningPolicyOnce sync.Once
	warningPolicy     *bluemonday.Policy
)

// Warning builds inline warning markup. The presentation layer reports
// problems in the rendered surface instead of returning errors; message and
// details are stripped of markup before being embedded.
func Warning(message string, details ...string) string {
	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(WarningMarker)
	b.WriteString(`" role="alert"><strong>Warning:</strong> `)
	b.WriteString(sanitizeText(message))
	for _, detail := range details {
		cleaned := sanitizeText(detail)
		if cleaned == "" {
			continue
		}
		b.WriteString("<pre>")
		b.WriteString(cleaned)
		b.WriteString("</pre>")
	}
	b.WriteString("</div>")
	return b.String()
}

// IsWarning reports whether output contains warning markup.
func IsWarning(output string) bool {
	return strings.Contains(output, `class="`+WarningMarker+`"`)
}

func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return warningSanitizer().Sanitize(trimmed)
}

func warningSanitizer() *bluemonday.Policy {
	warningPolicyOnce.Do(func() {
		warningPolicy = bluemonday.StrictPolicy()
	})
	return warningPolicy
}
