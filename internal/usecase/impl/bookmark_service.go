package impl

import (
	"context"
	"log/slog"

	deliverycontext "bookmarks/internal/delivery/context"
	"bookmarks/internal/domain/entity"
	domainerrors "bookmarks/internal/domain/errors"
	"bookmarks/internal/domain/repository"
	"bookmarks/internal/errors"
	"bookmarks/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type bookmarkService struct {
	txManager    repository.TransactionManager
	bookmarkRepo repository.BookmarkRepository
	logger       *slog.Logger
}

type BookmarkServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	BookmarkRepo repository.BookmarkRepository
	Logger       *slog.Logger
}

func NewBookmarkService(params BookmarkServiceParams) usecase.BookmarkUsecase {
	return &bookmarkService{
		txManager:    params.TxManager,
		bookmarkRepo: params.BookmarkRepo,
		logger:       params.Logger,
	}
}

func (srv *bookmarkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *bookmarkService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error) {
	bookmarks, err := srv.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookmarks")
	}

	return bookmarks, nil
}

func (srv *bookmarkService) Get(ctx context.Context, userID, bookmarkID uuid.UUID) (*entity.Bookmark, error) {
	bookmark, err := srv.bookmarkRepo.FindByIDAndUser(ctx, bookmarkID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return nil, domainerrors.ErrBookmarkNotFound
		}

		return nil, errors.Wrap(err, "failed to get bookmark")
	}

	return bookmark, nil
}

func (srv *bookmarkService) Create(ctx context.Context, userID uuid.UUID, input usecase.CreateBookmarkInput) (*entity.Bookmark, error) {
	bookmark := &entity.Bookmark{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
	}

	if err := srv.bookmarkRepo.Create(ctx, bookmark); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to create bookmark")
	}

	srv.log(ctx).Debug("Bookmark created", slog.String("bookmark_id", bookmark.ID.String()))

	return bookmark, nil
}

func (srv *bookmarkService) Edit(ctx context.Context, userID, bookmarkID uuid.UUID, input usecase.EditBookmarkInput) (*entity.Bookmark, error) {
	var edited *entity.Bookmark
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookmarkRepo := repoFactory.NewBookmarkRepository()

		bookmark, err := findOwnedBookmark(ctx, bookmarkRepo, userID, bookmarkID)
		if err != nil {
			return err
		}

		entity.BookmarkUpdate{
			Title:       input.Title,
			Description: input.Description,
			Link:        input.Link,
		}.Apply(bookmark)

		if err := bookmarkRepo.Update(ctx, bookmark); err != nil {
			return err
		}
		edited = bookmark

		return nil
	})
	if err != nil {
		return nil, srv.ownershipError(ctx, err, "failed to edit bookmark")
	}

	return edited, nil
}

func (srv *bookmarkService) Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookmarkRepo := repoFactory.NewBookmarkRepository()

		if _, err := findOwnedBookmark(ctx, bookmarkRepo, userID, bookmarkID); err != nil {
			return err
		}

		return bookmarkRepo.Delete(ctx, bookmarkID)
	})
	if err != nil {
		return srv.ownershipError(ctx, err, "failed to delete bookmark")
	}

	return nil
}

// findOwnedBookmark treats a missing bookmark and someone else's bookmark the same way.
func findOwnedBookmark(ctx context.Context, repo repository.BookmarkRepository, userID, bookmarkID uuid.UUID) (*entity.Bookmark, error) {
	bookmark, err := repo.FindByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return nil, domainerrors.ErrBookmarkAccessDenied
		}

		return nil, err
	}
	if bookmark.UserID != userID {
		return nil, domainerrors.ErrBookmarkAccessDenied
	}

	return bookmark, nil
}

func (srv *bookmarkService) ownershipError(ctx context.Context, err error, message string) error {
	if errors.IsAny(err, domainerrors.ErrBookmarkAccessDenied, repository.ErrBookmarkNotFound) {
		return domainerrors.ErrBookmarkAccessDenied
	}

	srv.log(ctx).Error(message, slog.Any("error", err))

	return errors.Wrap(err, message)
}
