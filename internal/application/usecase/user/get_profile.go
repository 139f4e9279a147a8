// Package user contains profile use cases for the authenticated user.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// GetProfileInput represents the input for reading a profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// ProfileOutput represents a user profile.
type ProfileOutput struct {
	ID            uuid.UUID
	Email         string
	Name          string
	InsightDigest bool
	CreatedAt     time.Time
}

// GetProfileUseCase handles reading the profile.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute returns the profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*ProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	return toProfileOutput(user), nil
}

func toProfileOutput(u *entity.User) *ProfileOutput {
	return &ProfileOutput{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		InsightDigest: u.InsightDigest,
		CreatedAt:     u.CreatedAt,
	}
}
