// Package clarify decides whether a query is too ambiguous to retrieve for.
package clarify

import "strings"

// Question is asked when a query names a general topic without naming a
// certification standard.
const Question = "Do you want the validation requirements according to a specific Carbon Standard (e.g., VCS, GS, CDM)?"

// Default term lists. Both are configuration and may be overridden.
var (
	DefaultStandards = []string{"vcs", "gs", "cdm"}
	DefaultTopics    = []string{"arr project", "validation requirement", "methodology"}
)

// Gate is a stateless predicate over raw query text. It never consults
// retrieval results.
type Gate struct {
	standards []string
	topics    []string
}

// NewGate builds a gate from the given term lists, falling back to the
// defaults when a list is empty.
func NewGate(standards, topics []string) *Gate {
	if len(standards) == 0 {
		standards = DefaultStandards
	}
	if len(topics) == 0 {
		topics = DefaultTopics
	}
	return &Gate{standards: lower(standards), topics: lower(topics)}
}

// Check returns a clarification question when the query mentions a general
// topic but no standard. A standard term anywhere in the query wins, even
// when topic terms are also present.
func (g *Gate) Check(query string) string {
	q := strings.ToLower(query)
	for _, std := range g.standards {
		if strings.Contains(q, std) {
			return ""
		}
	}
	for _, topic := range g.topics {
		if strings.Contains(q, topic) {
			return Question
		}
	}
	return ""
}

func lower(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}
