package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository stores ledger owners in the users table. Emails are kept
// lower-cased, so lookups compare against the lower-cased input.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(model.FromEntity(user)).Error
}

// FindByID loads a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail loads a user by email, ignoring case.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email))
}

// ExistsByEmail reports whether the email is taken.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&n).Error
	return n > 0, err
}

// Update saves changes to an existing user.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(model.FromEntity(user)).Error
}

// Delete removes the user and every refresh token issued to them.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.RefreshTokenModel{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.UserModel{}, "id = ?", id).Error
	})
}

// ListInsightSubscribers returns users who opted into the insight digest.
func (r *userRepository) ListInsightSubscribers(ctx context.Context) ([]*entity.User, error) {
	var rows []model.UserModel
	err := r.db.WithContext(ctx).
		Where("insight_digest = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToEntity()
	}
	return users, nil
}

func (r *userRepository) first(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var row model.UserModel
	err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}
