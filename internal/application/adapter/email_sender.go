// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
	Tag     string // provider-side category, optional
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// InsightEmailInput represents an insight digest to deliver.
type InsightEmailInput struct {
	To           string
	Name         string
	PeriodLabel  string
	TotalBalance string
	Insights     string // Markdown
}

// EmailService defines the interface for composing and sending application emails.
type EmailService interface {
	// SendInsightEmail renders and sends an insight digest.
	SendInsightEmail(ctx context.Context, input InsightEmailInput) (*SendEmailResult, error)
}
