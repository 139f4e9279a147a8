// Package email provides email sending functionality.
package email

import (
	"bytes"
	"context"
	htmltemplate "html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/email/templates"
)

// Service composes application emails and hands them to an EmailSender.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
	markdown goldmark.Markdown
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// SendInsightEmail renders the Markdown insights to HTML and sends the digest.
func (s *Service) SendInsightEmail(ctx context.Context, input adapter.InsightEmailInput) (*adapter.SendEmailResult, error) {
	var body bytes.Buffer
	if err := s.markdown.Convert([]byte(input.Insights), &body); err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailRenderFailed,
			"failed to render insights markdown",
			err,
		)
	}

	rendered, err := s.renderer.InsightDigest(templates.InsightDigestData{
		UserName:     input.Name,
		PeriodLabel:  input.PeriodLabel,
		TotalBalance: input.TotalBalance,
		// goldmark drops raw HTML from the model output unless WithUnsafe is set
		InsightsHTML: htmltemplate.HTML(body.String()),
		InsightsText: input.Insights,
	})
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailRenderFailed,
			"failed to render insight digest",
			err,
		)
	}

	return s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.To,
		Name:    input.Name,
		Subject: "Your spending insights for " + input.PeriodLabel,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
		Tag:     "insights",
	})
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
