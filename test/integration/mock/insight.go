package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// InsightService answers with a configurable canned text.
type InsightService struct {
	mu        sync.Mutex
	text      string
	available bool
	fail      bool
	lastCount int
}

// NewInsightService creates a scripted insight model.
func NewInsightService() *InsightService {
	s := &InsightService{}
	s.Reset()
	return s
}

// Reset restores the default answer.
func (s *InsightService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = "You spent most of your money on food."
	s.available = true
	s.fail = false
	s.lastCount = 0
}

// SetText sets the answer text.
func (s *InsightService) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// SetAvailable toggles whether the model is configured.
func (s *InsightService) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = available
}

// SetFailing makes GenerateInsights return an error.
func (s *InsightService) SetFailing(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// LastTransactionCount is the number of rows sent on the last call.
func (s *InsightService) LastTransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCount
}

// GenerateInsights records the transactions and returns the scripted text.
func (s *InsightService) GenerateInsights(_ context.Context, _ string, transactions []adapter.InsightTransaction) (*adapter.InsightResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCount = len(transactions)
	if s.fail {
		return nil, errors.New("model unavailable")
	}
	return &adapter.InsightResult{Insights: s.text}, nil
}

// IsAvailable reports whether the model is configured.
func (s *InsightService) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}
