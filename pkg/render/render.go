// Package render converts raw model output into display markup. It is a
// fixed-rule substitution table, not a Markdown parser: unmatched or
// malformed markers are left as literal text.
package render

import (
	"regexp"
	"strings"
)

// Rule is a single pattern-to-markup substitution.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs one rule over the input.
func (r Rule) Apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

// Rules is the ordered substitution table. Inline emphasis runs before
// block rules; double markers before their single-marker fallbacks so a
// lone "*unclosed" stays literal.
var Rules = []Rule{
	{"bold-double", regexp.MustCompile(`\*\*(.+?)\*\*`), `<strong>$1</strong>`},
	{"bold-single", regexp.MustCompile(`\*([^*\n]+)\*`), `<strong>$1</strong>`},
	{"emphasis-double", regexp.MustCompile(`__(.+?)__`), `<em>$1</em>`},
	{"emphasis-single", regexp.MustCompile(`_([^_\n]+)_`), `<em>$1</em>`},
	{"underline", regexp.MustCompile(`~~(.+?)~~`), `<u>$1</u>`},

	{"heading-1", regexp.MustCompile(`(?m)^# (.+)$`), `<h1>$1</h1>`},
	{"heading-2", regexp.MustCompile(`(?m)^## (.+)$`), `<h2>$1</h2>`},
	{"heading-3", regexp.MustCompile(`(?m)^### (.+)$`), `<h3>$1</h3>`},

	{"question-en", regexp.MustCompile(`(?m)^(?:Q|Question)\s*(\d+)[:.]\s*(.*)$`),
		`<div class="question-block"><span class="question-label">Question $1:</span> $2</div>`},
	{"question-es", regexp.MustCompile(`(?m)^(Pregunta|Ejercicio|Problema)\s*(\d+)[:.]\s*(.*)$`),
		`<div class="question-block"><span class="question-label">$1 $2:</span> $3</div>`},

	{"numbered-item", regexp.MustCompile(`(?m)^(\d+)\.\s+(.*)$`),
		`<div class="numbered-item"><span class="item-label">$1.</span> $2</div>`},
	{"bullet-item", regexp.MustCompile(`(?m)^[-•]\s+(.*)$`),
		`<div class="bullet-item">• $1</div>`},
	{"choice-item", regexp.MustCompile(`(?m)^([A-Za-z])[).]\s+(.*)$`),
		`<div class="choice-item"><span class="choice-label">$1)</span> $2</div>`},
}

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Format applies the substitution table, groups the result into
// paragraphs on blank-line boundaries, and wraps everything in a single
// container block. Paragraphs that already start with markup pass
// through unwrapped; single line breaks inside a paragraph become
// explicit <br> tags.
func Format(raw string) string {
	if raw == "" {
		return ""
	}

	formatted := raw
	for _, rule := range Rules {
		formatted = rule.Apply(formatted)
	}

	paragraphs := paragraphBreak.Split(formatted, -1)
	for i, para := range paragraphs {
		if strings.HasPrefix(strings.TrimSpace(para), "<") {
			continue
		}
		lines := strings.Split(para, "\n")
		paragraphs[i] = `<p>` + strings.Join(lines, "<br>") + `</p>`
	}

	return `<div class="exam-content">` + strings.Join(paragraphs, "\n") + `</div>`
}
