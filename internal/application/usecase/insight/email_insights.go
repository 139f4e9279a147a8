// Package insight contains AI spending insight use cases.
package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// EmailInsightsInput represents the input for emailing insights to a user.
type EmailInsightsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// EmailInsightsOutput represents the output of emailing insights.
type EmailInsightsOutput struct {
	To               string
	MessageID        string
	TransactionCount int
}

// EmailInsightsUseCase generates insights and mails them to the user.
type EmailInsightsUseCase struct {
	generate     *GenerateInsightsUseCase
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
}

// NewEmailInsightsUseCase creates a new EmailInsightsUseCase instance.
func NewEmailInsightsUseCase(
	generate *GenerateInsightsUseCase,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *EmailInsightsUseCase {
	return &EmailInsightsUseCase{
		generate:     generate,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Execute generates insights for the period and sends them to the user's address.
func (uc *EmailInsightsUseCase) Execute(ctx context.Context, input EmailInsightsInput) (*EmailInsightsOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	insights, err := uc.generate.Execute(ctx, GenerateInsightsInput{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	result, err := uc.emailService.SendInsightEmail(ctx, adapter.InsightEmailInput{
		To:           user.Email,
		Name:         user.Name,
		PeriodLabel:  periodLabel(input.StartDate, input.EndDate, insights.GeneratedAt),
		TotalBalance: insights.TotalBalance,
		Insights:     insights.Insights,
	})
	if err != nil {
		return nil, err
	}

	return &EmailInsightsOutput{
		To:               user.Email,
		MessageID:        result.ResendID,
		TransactionCount: insights.TransactionCount,
	}, nil
}

func periodLabel(start, end *time.Time, now time.Time) string {
	const layout = "Jan 2, 2006"
	switch {
	case start != nil && end != nil:
		return start.Format(layout) + " - " + end.Format(layout)
	case start != nil:
		return start.Format(layout) + " - " + now.Format(layout)
	case end != nil:
		return "the period up to " + end.Format(layout)
	default:
		return "your recent activity"
	}
}
