package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/quote.html
var templateFS embed.FS

var quoteTemplate = template.Must(template.ParseFS(templateFS, "templates/quote.html"))

// RenderQuoteHTML renders the printable quote sheet
func RenderQuoteHTML(q *Quote) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, q); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
