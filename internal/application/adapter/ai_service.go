// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// InsightTransaction is the flattened transaction view sent to the insight model.
type InsightTransaction struct {
	Date    string
	Time    string
	Account string
	Amount  string
	Remarks string
	Type    string
}

// InsightResult is the free-text answer of the insight model.
type InsightResult struct {
	Insights string
}

// InsightService defines the interface for AI generated spending insights.
// The result is advisory text; callers never parse it.
type InsightService interface {
	// GenerateInsights analyzes transactions and returns Markdown text.
	GenerateInsights(ctx context.Context, currency string, transactions []InsightTransaction) (*InsightResult, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
