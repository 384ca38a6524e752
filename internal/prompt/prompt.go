// Package prompt assembles the instruction prompt handed to the generator.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"carbongpt/internal/domain"
)

// System is the generator's system instruction.
const System = "You are an expert assistant specialized in carbon credit standards, methodologies, and certifications."

// The citation directives are template data passed to the generator, not
// behavior this pipeline enforces.
const templateText = `You are an expert assistant specialized in carbon credit standards, methodologies, and certifications.

Use the provided CONTEXT and QUOTED SENTENCES to answer the user's question with maximum accuracy.

**Instructions:**
1. Provide a clear and direct answer.
2. Explicitly cite the documents and clauses to support your answer.
3. If any QUOTED SENTENCE contains information about Validation or Verification timing (even indirectly), include it clearly in the answer.
4. Do not say "no explicit fixed deadline" if there is any sentence mentioning timing, period, or requirement for Validation or Verification.
5. If truly no such sentence is present, then state: "The information is not available in the provided documents."

CONTEXT:
{{.Context}}

QUOTED SENTENCES:
{{.Quotes}}

QUESTION:
{{.Question}}

ANSWER (Direct + Detailed + Quoted):`

var tmpl = template.Must(template.New("answer").Parse(templateText))

type data struct {
	Context  string
	Quotes   string
	Question string
}

// Compose renders the retrieved context, the quoted evidence, and the
// question into a single instruction-following prompt.
func Compose(query, context string, quotes []domain.Quote) string {
	lines := make([]string, len(quotes))
	for i, q := range quotes {
		lines[i] = fmt.Sprintf("- From `%s`, Clause `%s`: \"%s\"", q.Source, q.Clause, q.Snippet)
	}
	var b strings.Builder
	// The template is static; execution over plain strings cannot fail.
	_ = tmpl.Execute(&b, data{
		Context:  context,
		Quotes:   strings.Join(lines, "\n\n"),
		Question: query,
	})
	return b.String()
}
