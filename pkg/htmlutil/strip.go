package htmlutil

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// Strip removes all HTML markup from the input and decodes entities,
// leaving plain text. Course summaries are stored as HTML in the LMS
// and must never leak markup into report records.
func Strip(raw string) string {
	if raw == "" {
		return ""
	}
	plain := stripPolicy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(plain))
}
