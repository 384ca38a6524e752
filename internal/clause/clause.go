// Package clause locates clause identifiers inside standard documents.
package clause

import (
	"regexp"

	"carbongpt/internal/domain"
)

var pattern = regexp.MustCompile(`(?i)clause\s+([\d.]+)`)

// Extract returns the first dotted clause number referenced in text, for
// example "12.3.4" from "see Clause 12.3.4". When no clause pattern is
// present it returns domain.ClauseUnknown.
func Extract(text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return domain.ClauseUnknown
	}
	return m[1]
}
