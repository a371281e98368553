package export

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactFilenameShortSubject(t *testing.T) {
	assert.Equal(t, "Math.pdf", ArtifactFilename("Math", "Exam"))
	assert.Equal(t, "Natural_Science.pdf", ArtifactFilename("Natural Science", "Exam"))
}

func TestArtifactFilenameFallback(t *testing.T) {
	assert.Equal(t, "Exam.pdf", ArtifactFilename("", "Exam"))
	assert.Equal(t, "Lesson_Plan.pdf", ArtifactFilename("   ", "Lesson Plan"))
}

func TestArtifactFilenameTruncation(t *testing.T) {
	name := ArtifactFilename("Very Long Subject Name That Exceeds Thirty Characters", "Exam")
	assert.LessOrEqual(t, utf8.RuneCountInString(name), 30)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Equal(t, "Very_Long_Subject_Name_Tha.pdf", name)
}

func TestPDFRender(t *testing.T) {
	exporter := NewPDFExporter()
	data, err := exporter.Render("# Math Exam\n\nQuestion 1: What is 2+2?\nA) 3\nB) 4\n\n**Total: 10 points**", "Math Exam")
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRenderEmptyContent(t *testing.T) {
	exporter := NewPDFExporter()
	_, err := exporter.Render("   ", "Math")
	require.Error(t, err)
}

func TestHTMLDocument(t *testing.T) {
	doc := HTMLDocument("# Title\n\nbody", "My Exam")
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "<title>My Exam</title>")
	assert.Contains(t, doc, "<h1>Title</h1>")
	assert.Contains(t, doc, "Generated with Maestre AI")
	assert.Contains(t, doc, "size: A4")
}
