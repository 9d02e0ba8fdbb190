package entity

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a saved link owned by exactly one account.
type Bookmark struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookmarkUpdate lists the mutable bookmark fields; nil means unchanged.
type BookmarkUpdate struct {
	Title       *string
	Description *string
	Link        *string
}

// Apply copies every set field onto b.
func (u BookmarkUpdate) Apply(b *Bookmark) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Description != nil {
		b.Description = u.Description
	}
	if u.Link != nil {
		b.Link = *u.Link
	}
}
