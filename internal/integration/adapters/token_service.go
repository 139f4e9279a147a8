package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

const tokenIssuer = "ledger"

type tokenKind string

const (
	accessToken  tokenKind = "access"
	refreshToken tokenKind = "refresh"
)

// ledgerClaims are the claims carried by both token kinds.
type ledgerClaims struct {
	Email string    `json:"email"`
	Kind  tokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    config.JWTConfig
	store  persistence.TokenRepository
	now    func() time.Time
}

// NewTokenService signs HS256 tokens with the configured secret. Refresh
// tokens are recorded in store so they can be revoked.
func NewTokenService(cfg config.JWTConfig, store persistence.TokenRepository, now func() time.Time) adapter.TokenService {
	if now == nil {
		now = time.Now
	}
	return &tokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg,
		store:  store,
		now:    now,
	}
}

// GenerateTokenPair signs an access and a refresh token and stores the refresh token.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	accessTTL, refreshTTL := s.ttl.AccessTTL, s.ttl.RefreshTTL
	if rememberMe {
		accessTTL, refreshTTL = s.ttl.RememberAccessTTL, s.ttl.RememberRefreshTTL
	}
	now := s.now().UTC()

	access, err := s.sign(userID, email, accessToken, now, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(userID, email, refreshToken, now, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.store.SaveRefreshToken(ctx, refresh, userID, now.Add(refreshTTL)); err != nil {
		return nil, fmt.Errorf("failed to record refresh token: %w", err)
	}

	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateAccessToken parses an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.parse(token, accessToken)
}

// ValidateRefreshToken parses a refresh token and returns its claims.
func (s *tokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.parse(token, refreshToken)
}

// IsRefreshTokenValid reports whether the refresh token is stored and not revoked.
func (s *tokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return s.store.IsRefreshTokenValid(ctx, token)
}

// InvalidateRefreshToken revokes a single refresh token.
func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.store.InvalidateRefreshToken(ctx, token)
}

// InvalidateAllUserTokens revokes every refresh token of the user.
func (s *tokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.store.InvalidateAllUserRefreshTokens(ctx, userID)
}

func (s *tokenService) sign(userID uuid.UUID, email string, kind tokenKind, now time.Time, ttl time.Duration) (string, error) {
	claims := ledgerClaims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parse returns ErrExpiredToken for a well-signed token past its expiry and
// ErrInvalidToken for anything else it rejects.
func (s *tokenService) parse(token string, want tokenKind) (*adapter.TokenClaims, error) {
	var claims ledgerClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domainerror.ErrExpiredToken
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	case claims.Kind != want:
		return nil, fmt.Errorf("%w: expected %s token", domainerror.ErrInvalidToken, want)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domainerror.ErrInvalidToken)
	}
	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
