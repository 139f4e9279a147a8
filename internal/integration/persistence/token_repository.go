package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// TokenRepository records refresh tokens so a session can be revoked before
// its JWT expires.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	// IsRefreshTokenValid reports whether the token was issued here, is not
	// revoked and has not expired.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
	InvalidateRefreshToken(ctx context.Context, token string) error
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
	// PurgeExpired deletes tokens that expired before the given time and
	// returns how many were removed.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

type tokenRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db, now: time.Now}
}

// SaveRefreshToken stores the hash of a refresh token.
func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		TokenHash: hashToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: r.now().UTC(),
	}).Error
}

// IsRefreshTokenValid reports whether the token is stored, unrevoked and unexpired.
func (r *tokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND invalidated = ? AND expires_at > ?", hashToken(token), false, r.now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// InvalidateRefreshToken revokes the token.
func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	return r.revoke(ctx, "token_hash = ?", hashToken(token))
}

// InvalidateAllUserRefreshTokens revokes every token of the user.
func (r *tokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return r.revoke(ctx, "user_id = ? AND invalidated = ?", userID, false)
}

func (r *tokenRepository) revoke(ctx context.Context, query string, args ...any) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where(query, args...).
		Update("invalidated", true).Error
}

// PurgeExpired deletes tokens that expired before the given time.
func (r *tokenRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before.UTC()).
		Delete(&model.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
