package auth

import (
	"context"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserOutput represents the output of a successful login.
type LoginUserOutput struct {
	Session
	User *entity.User
}

// LoginUserUseCase exchanges an email and password for a session.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	ledgers         ledger.Runner
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	ledgers ledger.Runner,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		ledgers:         ledgers,
	}
}

// Execute verifies the credentials and opens a session.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, invalidCredentials()
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	session, err := openSession(ctx, uc.tokenService, uc.ledgers, user.ID, user.Email, input.RememberMe)
	if err != nil {
		return nil, err
	}
	return &LoginUserOutput{Session: session, User: user}, nil
}
