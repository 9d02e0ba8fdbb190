package postgres

import (
	"context"

	"bookmarks/internal/domain/entity"
	domainerrors "bookmarks/internal/domain/errors"
	"bookmarks/internal/domain/repository"
	"bookmarks/internal/errors"
	"bookmarks/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (repo *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	if bookmark.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate bookmark id")
		}
		bookmark.ID = id
	}

	bookmarkM := fromBookmarkDomain(bookmark)
	if err := repo.db.WithContext(ctx).Create(bookmarkM).Error; err != nil {
		if isForeignKeyConstraintViolation(err, constraintBookmarksUser) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "create bookmark")
	}

	bookmark.CreatedAt = bookmarkM.CreatedAt
	bookmark.UpdatedAt = bookmarkM.UpdatedAt

	return nil
}

func (repo *bookmarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bookmark, error) {
	var bookmarkM model.BookmarkModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&bookmarkM).Error; err != nil {
		return nil, mapBookmarkError(err, "find bookmark by id")
	}

	return toBookmarkDomain(&bookmarkM), nil
}

func (repo *bookmarkRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Bookmark, error) {
	var bookmarkM model.BookmarkModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&bookmarkM).Error
	if err != nil {
		return nil, mapBookmarkError(err, "find bookmark by id and user")
	}

	return toBookmarkDomain(&bookmarkM), nil
}

func (repo *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error) {
	var bookmarkMs []model.BookmarkModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&bookmarkMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list bookmarks")
	}

	bookmarks := make([]*entity.Bookmark, 0, len(bookmarkMs))
	for i := range bookmarkMs {
		bookmarks = append(bookmarks, toBookmarkDomain(&bookmarkMs[i]))
	}

	return bookmarks, nil
}

func (repo *bookmarkRepository) Update(ctx context.Context, bookmark *entity.Bookmark) error {
	bookmarkM := fromBookmarkDomain(bookmark)
	result := repo.db.WithContext(ctx).
		Model(bookmarkM).
		Select("title", "description", "link", "updated_at").
		Updates(bookmarkM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "update bookmark")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookmarkNotFound
	}

	bookmark.UpdatedAt = bookmarkM.UpdatedAt

	return nil
}

func (repo *bookmarkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BookmarkModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "delete bookmark")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookmarkNotFound
	}

	return nil
}

func mapBookmarkError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrBookmarkNotFound
	}

	return domainerrors.NewDatabaseExecuteError(err, action)
}

func toBookmarkDomain(m *model.BookmarkModel) *entity.Bookmark {
	return &entity.Bookmark{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Link:        m.Link,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromBookmarkDomain(b *entity.Bookmark) *model.BookmarkModel {
	return &model.BookmarkModel{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Description: b.Description,
		Link:        b.Link,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
