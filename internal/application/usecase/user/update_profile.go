package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxNameLength is the longest accepted display name.
const MaxNameLength = 100

// UpdateProfileInput holds the fields to change. Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID        uuid.UUID
	Name          *string
	InsightDigest *bool
}

// UpdateProfileUseCase handles profile updates.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo}
}

// Execute applies the update and returns the new profile.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*ProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > MaxNameLength {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength),
				nil,
			)
		}
		user.Name = name
	}
	if input.InsightDigest != nil {
		user.InsightDigest = *input.InsightDigest
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return toProfileOutput(user), nil
}
