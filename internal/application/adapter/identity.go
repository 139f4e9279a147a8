package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UserRepository stores the people who own ledgers.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByEmail matches case-insensitively and returns ErrUserNotFound on a miss.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListInsightSubscribers returns owners who opted in to the scheduled digest.
	ListInsightSubscribers(ctx context.Context) ([]*entity.User, error)
}

// PasswordService hashes and checks owner passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	// VerifyPassword returns nil only when password matches the stored hash.
	VerifyPassword(hashedPassword, password string) error
	ValidatePasswordStrength(password string) error
}

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identify the ledger owner a token was issued to.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and revokes session tokens. Refresh tokens are single
// use: a refresh revokes the presented token before issuing a new pair.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)
	// IsRefreshTokenValid reports false once the token was revoked or rotated.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
	InvalidateRefreshToken(ctx context.Context, token string) error
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error
}
