// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements the InsightService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateInsights asks the model for spending insights on the given transactions.
func (s *GeminiService) GenerateInsights(ctx context.Context, currency string, transactions []adapter.InsightTransaction) (*adapter.InsightResult, error) {
	if !s.IsAvailable() {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInsightsUnavailable,
			"gemini service is not configured",
			domainerror.ErrInsightsUnavailable,
		)
	}

	// Create client
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)

	prompt, err := s.buildPrompt(currency, transactions)
	if err != nil {
		return nil, err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if isQuotaError(err) {
			return nil, domainerror.NewInsightError(domainerror.ErrCodeInsightRateLimited, "gemini quota exceeded", domainerror.ErrInsightRateLimited)
		}
		return nil, domainerror.NewInsightError(domainerror.ErrCodeInsightServiceError, "failed to generate content", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, domainerror.NewInsightError(domainerror.ErrCodeInsightServiceError, "failed to read response", err)
	}

	return &adapter.InsightResult{Insights: text}, nil
}

// insightRow is the JSON shape of one transaction in the prompt.
type insightRow struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Account string `json:"account"`
	Amount  string `json:"amount"`
	Remarks string `json:"remarks"`
	Type    string `json:"type"`
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(currency string, transactions []adapter.InsightTransaction) (string, error) {
	rows := make([]insightRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, insightRow(t))
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to encode transactions: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`You are a personal finance assistant. Analyze the user's transactions below and write short, practical insights.

RULES:
- Amounts are in `)
	sb.WriteString(currency)
	sb.WriteString(`. Income amounts add to an account, expenditure amounts subtract from it. Transfers move money between the user's own accounts and are neither income nor spending.
- Point out where most of the money goes, unusual or growing expenses, and recurring payments.
- Suggest at most three concrete actions.
- Do not invent transactions or amounts that are not in the data.
- Answer in Markdown with the headings "Summary", "Spending patterns" and "Suggestions". Keep it under 300 words.

TRANSACTIONS (JSON, newest first):
`)
	sb.Write(payload)
	sb.WriteString("\n")

	return sb.String(), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	text = strings.TrimPrefix(text, "```markdown")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource exhausted")
}

// Ensure GeminiService implements InsightService.
var _ adapter.InsightService = (*GeminiService)(nil)
