package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/email/templates"
)

type recordingSender struct {
	sent []adapter.SendEmailInput
	err  error
}

func (s *recordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("sent-%d", len(s.sent))}, nil
}

func newTestService(t *testing.T) (*Service, *recordingSender) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	sender := &recordingSender{}
	return NewService(sender, renderer), sender
}

func TestService_SendInsightEmail(t *testing.T) {
	svc, sender := newTestService(t)

	result, err := svc.SendInsightEmail(context.Background(), adapter.InsightEmailInput{
		To:           "ana@example.com",
		Name:         "Ana",
		PeriodLabel:  "Apr 29 - May 5",
		TotalBalance: "$1,234.50",
		Insights:     "## Summary\n\nYou spent **most** on food.\n\n<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent-1", result.ResendID)
	require.Len(t, sender.sent, 1)

	sent := sender.sent[0]
	assert.Equal(t, "ana@example.com", sent.To)
	assert.Equal(t, "insights", sent.Tag)
	assert.Contains(t, sent.Subject, "Apr 29 - May 5")
	for _, want := range []string{"<h2>Summary</h2>", "<strong>most</strong>", "$1,234.50", "Hi Ana"} {
		assert.Contains(t, sent.HTML, want)
	}
	assert.NotContains(t, sent.HTML, "<script>")
	assert.Contains(t, sent.Text, "## Summary")
}

func TestService_SendInsightEmailFailure(t *testing.T) {
	svc, sender := newTestService(t)
	sender.err = classifySendError(errors.New("503 service unavailable"))

	_, err := svc.SendInsightEmail(context.Background(), adapter.InsightEmailInput{To: "ana@example.com", Insights: "ok"})

	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.Equal(t, domainerror.ErrCodeEmailUnavailable, emailErr.Code)
	assert.True(t, emailErr.Retryable())
}

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		msg  string
		want domainerror.EmailErrorCode
	}{
		{msg: "[ERROR]: The `to` field is invalid", want: domainerror.ErrCodeEmailRejected},
		{msg: "401 unauthorized", want: domainerror.ErrCodeEmailRejected},
		{msg: "[ERROR]: Unknown Error", want: domainerror.ErrCodeEmailUnavailable},
		{msg: "dial tcp: connection refused", want: domainerror.ErrCodeEmailUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySendError(errors.New(tt.msg)).Code)
		})
	}
}

func TestResendClient_Send(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-42"}`))
	}))
	defer server.Close()

	client, err := NewResendClient("re_test", server.URL, "Ledger", "ledger@example.com")
	require.NoError(t, err)

	result, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "ana@example.com",
		Subject: "Insights",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		Tag:     "insights",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-42", result.ResendID)
	assert.Equal(t, "Ledger <ledger@example.com>", received["from"])
	assert.Equal(t, []any{"ana@example.com"}, received["to"])
}

func TestResendClient_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewResendClient("re_test", server.URL, "Ledger", "ledger@example.com")
	require.NoError(t, err)

	_, err = client.Send(context.Background(), adapter.SendEmailInput{To: "ana@example.com"})
	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
}
