package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEmphasis(t *testing.T) {
	assert.Contains(t, Format("**bold**"), "<strong>bold</strong>")
	assert.Contains(t, Format("*bold*"), "<strong>bold</strong>")
	assert.Contains(t, Format("__soft__"), "<em>soft</em>")
	assert.Contains(t, Format("~~under~~"), "<u>under</u>")
}

func TestFormatHeadings(t *testing.T) {
	out := Format("# Title\n\n## Section\n\n### Sub")
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<h2>Section</h2>")
	assert.Contains(t, out, "<h3>Sub</h3>")
}

func TestFormatQuestionBlocks(t *testing.T) {
	out := Format("Question 3: What is photosynthesis?")
	assert.Contains(t, out, "Question 3:")
	assert.Contains(t, out, "question-block")

	out = Format("Pregunta 2: ¿Cuánto es 2+2?")
	assert.Contains(t, out, "Pregunta 2:")
}

func TestFormatChoiceItems(t *testing.T) {
	out := Format("A) chlorophyll\nB) mitochondria")
	assert.Contains(t, out, `<span class="choice-label">A)</span> chlorophyll`)
	assert.Contains(t, out, `<span class="choice-label">B)</span> mitochondria`)
}

func TestFormatMalformedMarkersStayLiteral(t *testing.T) {
	out := Format("**unclosed")
	assert.Contains(t, out, "**unclosed")
	assert.NotContains(t, out, "<strong>")
}

func TestFormatParagraphsAndLineBreaks(t *testing.T) {
	out := Format("first line\nsecond line\n\nnext paragraph")
	assert.Contains(t, out, "<p>first line<br>second line</p>")
	assert.Contains(t, out, "<p>next paragraph</p>")
	assert.True(t, strings.HasPrefix(out, `<div class="exam-content">`))
	assert.True(t, strings.HasSuffix(out, "</div>"))
}

func TestFormatMarkupParagraphPassesThroughUnwrapped(t *testing.T) {
	out := Format("# Heading\n\nbody text")
	assert.NotContains(t, out, "<p><h1>")
	assert.Contains(t, out, "<p>body text</p>")
}

func TestFormatDeterministic(t *testing.T) {
	in := "# Exam\n\nQuestion 1: Define osmosis.\nA) a\nB) b\n\n**10 points**"
	assert.Equal(t, Format(in), Format(in))
}

func TestFormatEmpty(t *testing.T) {
	assert.Empty(t, Format(""))
}

func TestRuleApplyIsolated(t *testing.T) {
	for _, rule := range Rules {
		if rule.Name == "numbered-item" {
			out := rule.Apply("1. first\n2. second")
			assert.Contains(t, out, `<span class="item-label">1.</span> first`)
			return
		}
	}
	t.Fatal("numbered-item rule missing")
}
