package export

import (
	"regexp"
	"strings"
)

const (
	pdfExtension  = ".pdf"
	maxNameLength = 30
	truncateAt    = 26
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ArtifactFilename derives the download filename for a generated
// artifact: the subject (or the localized fallback when empty) with
// whitespace collapsed to underscores, capped at 30 characters
// including the extension by keeping the first 26 characters of the
// base name.
func ArtifactFilename(subject, fallback string) string {
	base := strings.TrimSpace(subject)
	if base == "" {
		base = fallback
	}
	name := whitespaceRun.ReplaceAllString(base, "_") + pdfExtension
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:truncateAt]) + pdfExtension
	}
	return name
}
