package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders generated artifacts into paginated A4 documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render produces a print-ready PDF with a centered title and a uniform
// "Page X of Y" footer on every page.
func (e *PDFExporter) Render(rawText, title string) ([]byte, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("pdf requires non-empty content")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 18)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
		pdf.SetLineWidth(0.5)
		pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "", 11)
	for _, line := range plainLines(rawText) {
		if line == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 5.5, tr(line), "", "L", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// plainLines strips display markers the on-screen renderer handles; the
// PDF body is plain text.
func plainLines(raw string) []string {
	replacer := strings.NewReplacer("**", "", "__", "", "~~", "")
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = replacer.Replace(line)
		line = strings.TrimLeft(line, "#")
		out = append(out, strings.TrimSpace(line))
	}
	return out
}
