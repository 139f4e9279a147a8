package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func TestGeminiService_NotConfigured(t *testing.T) {
	s := NewGeminiService("", "")
	if s.IsAvailable() {
		t.Fatal("expected service without api key to be unavailable")
	}
	_, err := s.GenerateInsights(context.Background(), "USD", nil)
	if !errors.Is(err, domainerror.ErrInsightsUnavailable) {
		t.Fatalf("expected ErrInsightsUnavailable, got %v", err)
	}
}

func TestGeminiService_BuildPrompt(t *testing.T) {
	s := NewGeminiService("key", "")
	prompt, err := s.buildPrompt("EUR", []adapter.InsightTransaction{
		{Date: "2024-05-01", Time: "12:00", Account: "Cash → Bank", Amount: "20.00", Remarks: `say "hi"`, Type: "transfer"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Amounts are in EUR.",
		`"account":"Cash → Bank"`,
		`"remarks":"say \"hi\""`,
		`"type":"transfer"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{
			name: "joins text parts and strips fences",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("```markdown\n## Summary\n"), genai.Text("All good\n```")}},
			}}},
			want: "## Summary\nAll good",
		},
		{
			name: "empty text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("   ")}},
			}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
