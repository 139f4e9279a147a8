package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/insight"
)

// DigestRunner sends the periodic insight digest.
type DigestRunner interface {
	Execute(ctx context.Context) (*insight.SendDigestOutput, error)
}

// DigestJob mails insights to every user who opted into the digest.
type DigestJob struct {
	digest DigestRunner
}

// NewDigestJob creates a new digest job.
func NewDigestJob(digest DigestRunner) *DigestJob {
	return &DigestJob{digest: digest}
}

// Name implements Job.
func (j *DigestJob) Name() string { return "insight_digest" }

// Run implements Job.
func (j *DigestJob) Run(ctx context.Context) error {
	out, err := j.digest.Execute(ctx)
	if err != nil {
		return err
	}
	slog.Info("Insight digest finished", "sent", out.Sent, "skipped", out.Skipped, "failed", out.Failed)
	return nil
}

// TokenPurger deletes refresh tokens that expired before a given time.
type TokenPurger interface {
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// TokenPurgeJob removes expired refresh tokens.
type TokenPurgeJob struct {
	tokens TokenPurger
	now    func() time.Time
}

// NewTokenPurgeJob creates a new token purge job.
func NewTokenPurgeJob(tokens TokenPurger) *TokenPurgeJob {
	return &TokenPurgeJob{
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Name implements Job.
func (j *TokenPurgeJob) Name() string { return "token_purge" }

// Run implements Job.
func (j *TokenPurgeJob) Run(ctx context.Context) error {
	n, err := j.tokens.PurgeExpired(ctx, j.now())
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Expired refresh tokens purged", "count", n)
	}
	return nil
}

// LimitSweeper drops expired rate limit counters.
type LimitSweeper interface {
	Cleanup() int
}

// LimitCleanupJob frees rate limit counters whose window has closed.
type LimitCleanupJob struct {
	limits LimitSweeper
}

// NewLimitCleanupJob creates a new rate limit cleanup job.
func NewLimitCleanupJob(limits LimitSweeper) *LimitCleanupJob {
	return &LimitCleanupJob{limits: limits}
}

// Name implements Job.
func (j *LimitCleanupJob) Name() string { return "rate_limit_cleanup" }

// Run implements Job.
func (j *LimitCleanupJob) Run(context.Context) error {
	if n := j.limits.Cleanup(); n > 0 {
		slog.Debug("Expired rate limit entries removed", "count", n)
	}
	return nil
}
