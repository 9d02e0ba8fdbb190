package repository

import (
	"context"
	"errors"

	"bookmarks/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookmarkNotFound is returned when no bookmark matches the lookup key.
var ErrBookmarkNotFound = errors.New("bookmark not found")

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entity.Bookmark) error

	// FindByID does not filter by owner; callers check ownership.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bookmark, error)

	// FindByIDAndUser returns ErrBookmarkNotFound for bookmarks owned by someone else.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Bookmark, error)

	// ListByUser returns the user's bookmarks, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error)

	Update(ctx context.Context, bookmark *entity.Bookmark) error

	Delete(ctx context.Context, id uuid.UUID) error
}
