// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string    `gorm:"type:varchar(100);not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	InsightDigest bool      `gorm:"not null;default:false;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		InsightDigest: m.InsightDigest,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		PasswordHash:  user.PasswordHash,
		InsightDigest: user.InsightDigest,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// RefreshTokenModel tracks issued refresh tokens so they can be revoked.
// Only the SHA-256 of a token is stored.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TokenHash   string    `gorm:"type:char(64);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"not null;default:false"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
