//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"bookmarks/config"
	"bookmarks/internal/domain/entity"
	domainerrors "bookmarks/internal/domain/errors"
	"bookmarks/internal/domain/repository"
	"bookmarks/internal/errors"
	"bookmarks/internal/infra/persistence/migrations"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// testDB is shared by every integration test in the package.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:18-alpine",
		tcpostgres.WithDatabase("bookmarks_test"),
		tcpostgres.WithUsername("bookmarks"),
		tcpostgres.WithPassword("bookmarks"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get container host: " + err.Error())
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get container port: " + err.Error())
	}

	cfg := &config.PostgresConfig{
		Master: config.ConnectionConfig{
			Host:     host,
			Port:     port.Port(),
			UserName: "bookmarks",
			Password: "bookmarks",
		},
		Database:     "bookmarks_test",
		SSLMode:      "disable",
		TimeZone:     "UTC",
		MaxOpenConns: 16,
		MaxIdleConns: 4,
	}

	migrator, err := migrations.NewMigrator(cfg.URL())
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to create migrator: " + err.Error())
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		_ = container.Terminate(ctx)
		panic("failed to run migrations: " + err.Error())
	}
	_ = migrator.Close()

	db, err := Open(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to open database: " + err.Error())
	}
	testDB = db

	code := m.Run()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = container.Terminate(ctx)

	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()

	require.NoError(t, testDB.Exec("TRUNCATE TABLE bookmarks, users CASCADE").Error)
}

func createAccount(t *testing.T, email string) *entity.Account {
	t.Helper()

	account := &entity.Account{Email: email, PasswordHash: "$argon2id$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA"}
	require.NoError(t, NewAccountRepository(testDB).Create(context.Background(), account))

	return account
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	resetTables(t)
	repo := NewAccountRepository(testDB)
	ctx := context.Background()

	account := createAccount(t, "vlad@gmail.com")
	assert.Equal(t, uuid.Version(7), account.ID.Version())
	assert.False(t, account.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "vlad@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
	assert.Equal(t, account.PasswordHash, byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "vlad@gmail.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "VLAD@gmail.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	resetTables(t)

	createAccount(t, "taken@example.com")

	err := NewAccountRepository(testDB).Create(context.Background(), &entity.Account{
		Email:        "taken@example.com",
		PasswordHash: "other",
	})

	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestAccountRepository_Create_ConcurrentSameEmail(t *testing.T) {
	resetTables(t)
	repo := NewAccountRepository(testDB)

	const workers = 12
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		taken int
	)
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			err := repo.Create(context.Background(), &entity.Account{Email: "race@example.com", PasswordHash: "h"})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, repository.ErrEmailTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, taken)
}

func TestAccountRepository_UpdateProfile(t *testing.T) {
	resetTables(t)
	repo := NewAccountRepository(testDB)
	ctx := context.Background()

	account := createAccount(t, "profile@example.com")
	first := "Vlad"

	updated, err := repo.UpdateProfile(ctx, account.ID, entity.ProfileUpdate{FirstName: &first})
	require.NoError(t, err)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Vlad", *updated.FirstName)
	assert.Nil(t, updated.LastName)
	assert.Equal(t, account.PasswordHash, updated.PasswordHash)

	unchanged, err := repo.UpdateProfile(ctx, account.ID, entity.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Vlad", *unchanged.FirstName)

	_, err = repo.UpdateProfile(ctx, uuid.New(), entity.ProfileUpdate{FirstName: &first})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestBookmarkRepository_Lifecycle(t *testing.T) {
	resetTables(t)
	repo := NewBookmarkRepository(testDB)
	ctx := context.Background()

	owner := createAccount(t, "owner@example.com")
	other := createAccount(t, "other@example.com")

	empty, err := repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	older := &entity.Bookmark{UserID: owner.ID, Title: "Older", Link: "https://a.example"}
	require.NoError(t, repo.Create(ctx, older))
	newer := &entity.Bookmark{UserID: owner.ID, Title: "Newer", Link: "https://b.example"}
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	_, err = repo.FindByIDAndUser(ctx, older.ID, other.ID)
	assert.ErrorIs(t, err, repository.ErrBookmarkNotFound)

	description := "docs"
	older.Title = "Renamed"
	older.Description = &description
	require.NoError(t, repo.Update(ctx, older))

	stored, err := repo.FindByIDAndUser(ctx, older.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, "docs", *stored.Description)

	require.NoError(t, repo.Delete(ctx, older.ID))
	assert.ErrorIs(t, repo.Delete(ctx, older.ID), repository.ErrBookmarkNotFound)
}

func TestBookmarkRepository_Create_UnknownOwner(t *testing.T) {
	resetTables(t)

	err := NewBookmarkRepository(testDB).Create(context.Background(), &entity.Bookmark{
		UserID: uuid.New(),
		Title:  "Orphan",
		Link:   "https://a.example",
	})

	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestBookmarkRepository_CascadeOnAccountDelete(t *testing.T) {
	resetTables(t)
	repo := NewBookmarkRepository(testDB)
	ctx := context.Background()

	owner := createAccount(t, "cascade@example.com")
	bookmark := &entity.Bookmark{UserID: owner.ID, Title: "Gone soon", Link: "https://a.example"}
	require.NoError(t, repo.Create(ctx, bookmark))

	require.NoError(t, testDB.Exec("DELETE FROM users WHERE id = ?", owner.ID).Error)

	_, err := repo.FindByID(ctx, bookmark.ID)
	assert.ErrorIs(t, err, repository.ErrBookmarkNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := NewTransactionManager(testDB).Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewAccountRepository().Create(ctx, &entity.Account{Email: "rollback@example.com", PasswordHash: "h"}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewAccountRepository(testDB).FindByEmail(ctx, "rollback@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestTransactionManager_Commits(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	owner := createAccount(t, "commit@example.com")

	err := NewTransactionManager(testDB).Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.NewBookmarkRepository().Create(ctx, &entity.Bookmark{
			UserID: owner.ID,
			Title:  "Committed",
			Link:   "https://a.example",
		})
	})
	require.NoError(t, err)

	list, err := NewBookmarkRepository(testDB).ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestQueryFailureIsDatabaseError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAccountRepository(testDB).FindByID(ctx, uuid.New())

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "got %v", err)
	assert.NotErrorIs(t, err, repository.ErrAccountNotFound)
}
