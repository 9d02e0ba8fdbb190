package impl

import (
	"context"
	"testing"
	"time"

	"bookmarks/internal/domain/entity"
	domainerrors "bookmarks/internal/domain/errors"
	"bookmarks/internal/domain/repository"
	"bookmarks/internal/mocks/memory"
	mockRepo "bookmarks/internal/mocks/repository"
	"bookmarks/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityService_Resolve_LiveAccount(t *testing.T) {
	accounts := memory.NewAccountRepo()
	hasher, tokens := newRealAuthServices(t)
	auth := NewAuthService(AuthServiceParams{
		AccountRepo:  accounts,
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})
	identity := NewIdentityService(IdentityServiceParams{AccountRepo: accounts, Logger: newDiscardLogger()})

	ctx := context.Background()
	output, err := auth.Signup(ctx, usecase.SignupInput{Email: "vlad@gmail.com", Password: "123"})
	require.NoError(t, err)

	claim, err := tokens.Verify(output.AccessToken)
	require.NoError(t, err)

	account, err := identity.Resolve(ctx, claim)
	require.NoError(t, err)
	assert.Equal(t, claim.Subject, account.ID)
	assert.Equal(t, "vlad@gmail.com", account.Email)

	accounts.Delete(claim.Subject)

	_, err = identity.Resolve(ctx, claim)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestIdentityService_Resolve(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	claim := &entity.TokenClaim{
		Subject:   accountID,
		Email:     "old@example.com",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	t.Run("returns the stored account rather than the claim", func(t *testing.T) {
		accountRepo := mockRepo.NewMockAccountRepository(t)
		accountRepo.EXPECT().FindByID(ctx, accountID).Return(&entity.Account{
			ID:           accountID,
			Email:        "current@example.com",
			PasswordHash: "$argon2id$secret",
		}, nil)

		srv := NewIdentityService(IdentityServiceParams{AccountRepo: accountRepo, Logger: newDiscardLogger()})
		account, err := srv.Resolve(ctx, claim)

		require.NoError(t, err)
		assert.Equal(t, "current@example.com", account.Email)
	})

	t.Run("nil claim", func(t *testing.T) {
		srv := NewIdentityService(IdentityServiceParams{
			AccountRepo: mockRepo.NewMockAccountRepository(t),
			Logger:      newDiscardLogger(),
		})

		_, err := srv.Resolve(ctx, nil)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})

	t.Run("store failure is not an authentication failure", func(t *testing.T) {
		dbErr := errors.New("timeout")
		accountRepo := mockRepo.NewMockAccountRepository(t)
		accountRepo.EXPECT().FindByID(ctx, accountID).Return(nil, dbErr)

		srv := NewIdentityService(IdentityServiceParams{AccountRepo: accountRepo, Logger: newDiscardLogger()})
		_, err := srv.Resolve(ctx, claim)

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})

	t.Run("deleted account", func(t *testing.T) {
		accountRepo := mockRepo.NewMockAccountRepository(t)
		accountRepo.EXPECT().FindByID(ctx, accountID).Return(nil, repository.ErrAccountNotFound)

		srv := NewIdentityService(IdentityServiceParams{AccountRepo: accountRepo, Logger: newDiscardLogger()})
		_, err := srv.Resolve(ctx, claim)

		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})
}
