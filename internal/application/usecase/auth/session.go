// Package auth opens, rotates, and closes ledger owner sessions.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// Session is the token pair handed to a client together with the state of
// the owner's ledger.
type Session struct {
	AccessToken  string
	RefreshToken string
	NeedsSetup   bool // ledger currency not chosen yet
}

// openSession issues a token pair and loads the owner's ledger, so the first
// ledger request after signing in is served from memory.
func openSession(ctx context.Context, tokens adapter.TokenService, ledgers ledger.Runner, userID uuid.UUID, email string, rememberMe bool) (Session, error) {
	pair, err := tokens.GenerateTokenPair(ctx, userID, email, rememberMe)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue token pair: %w", err)
	}

	needsSetup := true
	_ = ledgers.View(ctx, userID, func(l ledger.Ledger) error {
		needsSetup = l.NeedsSetup()
		return nil
	})

	return Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		NeedsSetup:   needsSetup,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// invalidCredentials does not say which half was wrong.
func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
