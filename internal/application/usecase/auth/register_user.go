package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	InsightDigest bool
}

// RegisterUserOutput represents the output of a registration.
type RegisterUserOutput struct {
	Session
	User *entity.User
}

// RegisterUserUseCase creates a ledger owner and signs them in. The ledger
// itself starts empty and waits for a currency.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	ledgers         ledger.Runner
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	ledgers ledger.Runner,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		ledgers:         ledgers,
	}
}

// Execute creates the user and signs them in.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "name and password are required", nil)
	}
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", domainerror.ErrInvalidEmail)
	}
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, "password does not meet minimum requirements", domainerror.ErrWeakPassword)
	}

	taken, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if taken {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, name, hash, time.Now().UTC())
	user.InsightDigest = input.InsightDigest
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := openSession(ctx, uc.tokenService, uc.ledgers, user.ID, user.Email, false)
	if err != nil {
		return nil, err
	}
	return &RegisterUserOutput{Session: session, User: user}, nil
}

// isValidEmail accepts a bare address with a dotted domain, no display name.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return strings.Contains(email[at+1:], ".")
}
