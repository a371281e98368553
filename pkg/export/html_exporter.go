package export

import (
	"fmt"

	"github.com/maestre-ai/maestre-api/pkg/render"
)

const documentStyles = `
    <style>
      @page {
        size: A4;
        margin: 2cm;
      }
      body {
        font-family: 'Arial', sans-serif;
        line-height: 1.5;
      }
      h1 {
        font-size: 18pt;
        text-align: center;
        margin-bottom: 0.5cm;
      }
      h2 {
        font-size: 14pt;
        margin-bottom: 0.3cm;
      }
      .question-block {
        margin: 0.5cm 0;
      }
      .choice-item {
        margin-left: 1cm;
      }
      .footer {
        text-align: center;
        font-size: 9pt;
        margin-top: 1cm;
        color: #666;
      }
    </style>`

const footerAttribution = "Generated with Maestre AI"

// HTMLDocument wraps rendered artifact markup in a standalone
// print-styled document with a fixed footer attribution line.
func HTMLDocument(rawText, title string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>%s</title>%s
</head>
<body>
%s
<div class="footer">%s</div>
</body>
</html>`, title, documentStyles, render.Format(rawText), footerAttribution)
}
