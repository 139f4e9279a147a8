// Package email delivers insight digests through Resend.
package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// Provider messages that mean the same request will never be accepted.
var rejectionMarkers = []string{
	"401", "403", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

// ResendClient implements adapter.EmailSender on the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a client. An empty baseURL keeps the Resend default.
func NewResendClient(apiKey, baseURL, fromName, fromEmail string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}
	return &ResendClient{
		client: client,
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}, nil
}

// Send delivers one message. Failures are EmailErrors whose code tells
// rejected messages apart from provider outages.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}
	if input.Tag != "" {
		params.Tags = []resend.Tag{{Name: "category", Value: input.Tag}}
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, classifySendError(err)
	}
	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

func classifySendError(err error) *domainerror.EmailError {
	msg := strings.ToLower(err.Error())
	for _, marker := range rejectionMarkers {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(domainerror.ErrCodeEmailRejected, "email rejected by provider", err)
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeEmailUnavailable, "email provider unavailable", err)
}

var _ adapter.EmailSender = (*ResendClient)(nil)
