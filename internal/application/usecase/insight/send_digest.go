// Package insight contains AI spending insight use cases.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// SendDigestOutput summarizes one digest run.
type SendDigestOutput struct {
	Sent    int
	Skipped int
	Failed  int
}

// SendDigestUseCase mails insights covering the last period to every opted-in user.
type SendDigestUseCase struct {
	userRepo adapter.UserRepository
	email    *EmailInsightsUseCase
	period   time.Duration
	now      func() time.Time
}

// NewSendDigestUseCase creates a new SendDigestUseCase instance.
func NewSendDigestUseCase(userRepo adapter.UserRepository, email *EmailInsightsUseCase, period time.Duration) *SendDigestUseCase {
	return &SendDigestUseCase{
		userRepo: userRepo,
		email:    email,
		period:   period,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute runs the digest. A failure for one user does not stop the others.
func (uc *SendDigestUseCase) Execute(ctx context.Context) (*SendDigestOutput, error) {
	users, err := uc.userRepo.ListInsightSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list digest subscribers: %w", err)
	}

	end := uc.now()
	start := end.Add(-uc.period)
	output := &SendDigestOutput{}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return output, err
		}
		_, err := uc.email.Execute(ctx, EmailInsightsInput{UserID: user.ID, StartDate: &start, EndDate: &end})
		switch {
		case err == nil:
			output.Sent++
		case errors.Is(err, domainerror.ErrNoTransactionsForInsights):
			output.Skipped++
		default:
			output.Failed++
			slog.Warn("Failed to send insight digest", "user_id", user.ID, "error", err)
		}
	}
	return output, nil
}
