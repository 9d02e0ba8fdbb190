package usecase

import (
	"context"

	"bookmarks/internal/domain/entity"

	"github.com/google/uuid"
)

// EditProfileInput lists the profile fields to change; nil leaves a field as is.
type EditProfileInput struct {
	FirstName *string
	LastName  *string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.PublicAccount, error)
	EditProfile(ctx context.Context, accountID uuid.UUID, input EditProfileInput) (*entity.PublicAccount, error)
}
