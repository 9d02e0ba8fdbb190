package usecase

import (
	"context"

	"bookmarks/internal/domain/entity"

	"github.com/google/uuid"
)

type CreateBookmarkInput struct {
	Title       string
	Description *string
	Link        string
}

// EditBookmarkInput lists the fields to change; nil leaves a field as is.
type EditBookmarkInput struct {
	Title       *string
	Description *string
	Link        *string
}

// BookmarkUsecase manages the bookmarks of one authenticated owner. Every
// call is scoped to userID; other owners' bookmarks are never visible.
type BookmarkUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error)

	// Get fails with domainerrors.ErrBookmarkNotFound for missing and foreign bookmarks.
	Get(ctx context.Context, userID, bookmarkID uuid.UUID) (*entity.Bookmark, error)

	Create(ctx context.Context, userID uuid.UUID, input CreateBookmarkInput) (*entity.Bookmark, error)

	// Edit and Delete fail with domainerrors.ErrBookmarkAccessDenied for missing and foreign bookmarks.
	Edit(ctx context.Context, userID, bookmarkID uuid.UUID, input EditBookmarkInput) (*entity.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error
}
