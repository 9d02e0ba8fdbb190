// Package memory provides in-memory repositories for tests that need the
// repository contracts without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookmarks/internal/domain/entity"
	"bookmarks/internal/domain/repository"

	"github.com/google/uuid"
)

// AccountRepo is an in-memory credential store with the same uniqueness
// contract as the database: one account per exact email.
type AccountRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.Account
	byEmail map[string]uuid.UUID
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		byID:    map[uuid.UUID]*entity.Account{},
		byEmail: map[string]uuid.UUID{},
	}
}

func (r *AccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return repository.ErrEmailTaken
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now().UTC()
	account.CreatedAt, account.UpdatedAt = now, now

	stored := *account
	r.byID[account.ID] = &stored
	r.byEmail[account.Email] = account.ID

	return nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	id, ok := r.byEmail[email]
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *AccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *AccountRepo) UpdateProfile(_ context.Context, id uuid.UUID, update entity.ProfileUpdate) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	if update.FirstName != nil {
		account.FirstName = update.FirstName
	}
	if update.LastName != nil {
		account.LastName = update.LastName
	}
	account.UpdatedAt = time.Now().UTC()
	copied := *account

	return &copied, nil
}

func (r *AccountRepo) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account, ok := r.byID[id]; ok {
		delete(r.byEmail, account.Email)
		delete(r.byID, id)
	}
}

type BookmarkRepo struct {
	mu        sync.Mutex
	bookmarks map[uuid.UUID]*entity.Bookmark
}

func NewBookmarkRepo() *BookmarkRepo {
	return &BookmarkRepo{bookmarks: map[uuid.UUID]*entity.Bookmark{}}
}

func (r *BookmarkRepo) Create(_ context.Context, bookmark *entity.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bookmark.ID == uuid.Nil {
		bookmark.ID = uuid.New()
	}
	bookmark.CreatedAt = time.Now().UTC().Add(time.Duration(len(r.bookmarks)) * time.Millisecond)
	bookmark.UpdatedAt = bookmark.CreatedAt
	stored := *bookmark
	r.bookmarks[bookmark.ID] = &stored

	return nil
}

func (r *BookmarkRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookmark, ok := r.bookmarks[id]
	if !ok {
		return nil, repository.ErrBookmarkNotFound
	}
	copied := *bookmark

	return &copied, nil
}

func (r *BookmarkRepo) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Bookmark, error) {
	bookmark, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookmark.UserID != userID {
		return nil, repository.ErrBookmarkNotFound
	}

	return bookmark, nil
}

func (r *BookmarkRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*entity.Bookmark{}
	for _, bookmark := range r.bookmarks {
		if bookmark.UserID == userID {
			copied := *bookmark
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })

	return result, nil
}

func (r *BookmarkRepo) Update(_ context.Context, bookmark *entity.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookmarks[bookmark.ID]; !ok {
		return repository.ErrBookmarkNotFound
	}
	bookmark.UpdatedAt = time.Now().UTC()
	stored := *bookmark
	r.bookmarks[bookmark.ID] = &stored

	return nil
}

func (r *BookmarkRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookmarks[id]; !ok {
		return repository.ErrBookmarkNotFound
	}
	delete(r.bookmarks, id)

	return nil
}

// TxManager runs fn directly against the in-memory repositories.
type TxManager struct {
	Accounts  *AccountRepo
	Bookmarks *BookmarkRepo
}

func (m *TxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *TxManager) NewAccountRepository() repository.AccountRepository {
	return m.Accounts
}

func (m *TxManager) NewBookmarkRepository() repository.BookmarkRepository {
	return m.Bookmarks
}
