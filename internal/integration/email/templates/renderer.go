// Package templates renders the insight digest email.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed insight_digest.html insight_digest.txt
var templateFS embed.FS

const insightDigest = "insight_digest"

// InsightDigestData contains data for the insight digest email template.
type InsightDigestData struct {
	UserName     string
	PeriodLabel  string
	TotalBalance string
	InsightsHTML htmltemplate.HTML // rendered from trusted Markdown
	InsightsText string
}

// Rendered is one message in both formats.
type Rendered struct {
	HTML string
	Text string
}

// Renderer holds the parsed digest templates.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded email templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, insightDigest+".html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML digest template: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, insightDigest+".txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text digest template: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// InsightDigest renders the digest. Both formats are required.
func (r *Renderer) InsightDigest(data InsightDigestData) (*Rendered, error) {
	var html, text bytes.Buffer
	if err := r.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML digest: %w", err)
	}
	if err := r.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render text digest: %w", err)
	}
	return &Rendered{HTML: html.String(), Text: text.String()}, nil
}
