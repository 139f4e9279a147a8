package auth

import (
	"context"
	"fmt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput mirrors the login answer so a client resuming a session
// learns whether the ledger still needs its currency chosen.
type RefreshTokenOutput struct {
	Session
}

// RefreshTokenUseCase rotates a refresh token into a new token pair.
type RefreshTokenUseCase struct {
	tokenService adapter.TokenService
	ledgers      ledger.Runner
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(tokenService adapter.TokenService, ledgers ledger.Runner) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		tokenService: tokenService,
		ledgers:      ledgers,
	}
}

// Execute exchanges a refresh token for a new pair. The old refresh token stops working.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, invalidRefreshToken("invalid or expired refresh token")
	}

	valid, err := uc.tokenService.IsRefreshTokenValid(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !valid {
		return nil, invalidRefreshToken("refresh token has been revoked")
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	session, err := openSession(ctx, uc.tokenService, uc.ledgers, claims.UserID, claims.Email, false)
	if err != nil {
		return nil, err
	}
	return &RefreshTokenOutput{Session: session}, nil
}

func invalidRefreshToken(msg string) error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, msg, domainerror.ErrInvalidToken)
}
