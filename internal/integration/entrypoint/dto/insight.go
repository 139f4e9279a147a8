package dto

import (
	"time"
)

// InsightsRequest represents the optional period for insight generation.
type InsightsRequest struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// InsightsResponse represents generated insights (Markdown).
type InsightsResponse struct {
	Insights         string    `json:"insights"`
	Currency         string    `json:"currency"`
	TotalBalance     string    `json:"total_balance"`
	TransactionCount int       `json:"transaction_count"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// InsightEmailResponse represents the result of emailing insights.
type InsightEmailResponse struct {
	SentTo           string `json:"sent_to"`
	MessageID        string `json:"message_id"`
	TransactionCount int    `json:"transaction_count"`
}
