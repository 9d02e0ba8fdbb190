// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bookmarks/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken is returned by Create when the email is already registered.
	// It is the only error Create reports for a uniqueness collision.
	ErrEmailTaken = errors.New("email already registered")
)

// AccountRepository is the credential store.
type AccountRepository interface {
	// Create persists a new account, filling in its ID and timestamps.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail reads from the primary so a fresh signup is visible immediately.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// UpdateProfile applies the non-nil fields and returns the updated account.
	UpdateProfile(ctx context.Context, id uuid.UUID, update entity.ProfileUpdate) (*entity.Account, error)
}
