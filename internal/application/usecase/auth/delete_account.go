package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DeleteConfirmation is the optional confirmation phrase for closing an account.
const DeleteConfirmation = "DELETE"

// DeleteAccountInput represents the input for deleting the caller's account.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountOutput represents the output after the account is gone.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase removes an owner together with their stored ledger.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	snapshotStore   adapter.SnapshotStore
	ledgers         ledger.Runner
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	snapshotStore adapter.SnapshotStore,
	ledgers ledger.Runner,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		snapshotStore:   snapshotStore,
		ledgers:         ledgers,
	}
}

// Execute checks the password and confirmation, then removes the user with their ledger and tokens.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input.Confirmation != "" && input.Confirmation != DeleteConfirmation {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly '"+DeleteConfirmation+"'",
			domainerror.ErrInvalidConfirmation,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid password", domainerror.ErrInvalidCredentials)
	}

	if err := uc.tokenService.InvalidateAllUserTokens(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to revoke sessions: %w", err)
	}

	// Ledger before user, so a failed delete can be retried with the same credentials.
	if err := uc.snapshotStore.Delete(ctx, input.UserID); err != nil {
		return nil, domainerror.NewPersistenceError(err)
	}
	uc.ledgers.Evict(input.UserID)

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return &DeleteAccountOutput{Success: true}, nil
}
