// Package sanitize strips markup from user-entered free text before it is
// persisted. Descriptions and contact details end up rendered inside map
// popups, so they must carry no HTML at all.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text removes every tag from the input and unescapes the entities the
// policy introduces, returning trimmed plain text.
func (s *Sanitizer) Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}
