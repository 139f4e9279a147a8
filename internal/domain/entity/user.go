// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the Finance Tracker system.
// Every user owns exactly one ledger, keyed by the user ID.
type User struct {
	ID            uuid.UUID
	Email         string
	Name          string
	PasswordHash  string
	InsightDigest bool // Opted in to the scheduled insight e-mail
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string, now time.Time) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
