package auth

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// LogoutUserInput carries the refresh token of the session being closed.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase revokes a session and releases the owner's in-memory ledger.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
	ledgers      ledger.Runner
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService, ledgers ledger.Runner) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
		ledgers:      ledgers,
	}
}

// Execute always succeeds. An unknown or already revoked token leaves nothing
// to release, so the client sees the same answer either way.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return &LogoutUserOutput{Message: "Successfully logged out"}, nil
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.WarnContext(ctx, "failed to revoke refresh token on logout",
			slog.String("user_id", claims.UserID.String()),
			slog.String("error", err.Error()),
		)
	}

	// Unsaved changes are still held in memory while a save is failing.
	if uc.ledgers.SyncStatus(claims.UserID) == nil {
		uc.ledgers.Evict(claims.UserID)
	}

	return &LogoutUserOutput{Message: "Successfully logged out"}, nil
}
