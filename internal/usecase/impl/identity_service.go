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

	"go.uber.org/fx"
)

type identityService struct {
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

type IdentityServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Logger      *slog.Logger
}

func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

// Resolve re-reads the account on every request so a deleted account stops
// authenticating even while its token is still unexpired.
func (srv *identityService) Resolve(ctx context.Context, claim *entity.TokenClaim) (*entity.PublicAccount, error) {
	if claim == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	account, err := srv.accountRepo.FindByID(ctx, claim.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			deliverycontext.GetLoggerOrDefault(ctx, srv.logger).
				Info("Token subject no longer exists", slog.String("account_id", claim.Subject.String()))

			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to resolve identity")
	}

	return account.Public(), nil
}
