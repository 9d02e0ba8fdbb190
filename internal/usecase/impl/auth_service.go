// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "bookmarks/internal/delivery/context"
	"bookmarks/internal/domain/entity"
	domainerrors "bookmarks/internal/domain/errors"
	"bookmarks/internal/domain/repository"
	"bookmarks/internal/domain/service"
	"bookmarks/internal/errors"
	"bookmarks/internal/usecase"

	"go.uber.org/fx"
)

// authService implements usecase.AuthUsecase.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      service.AuthMetrics
	logger       *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      service.AuthMetrics `optional:"true"`
	Logger       *slog.Logger
}

func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = noopAuthMetrics{}
	}

	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      metrics,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup hashes the password, stores the account and issues a token for it.
// The unique email index decides concurrent signups for the same address.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.AuthOutput, error) {
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.metrics.RecordSignup(service.OutcomeError)

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := &entity.Account{
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			srv.metrics.RecordSignup(service.OutcomeTaken)
			srv.log(ctx).Info("Signup rejected: email already registered")

			return nil, domainerrors.ErrCredentialsTaken
		}

		srv.metrics.RecordSignup(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to create account")
	}

	output, err := srv.issue(account)
	if err != nil {
		srv.metrics.RecordSignup(service.OutcomeError)

		return nil, err
	}

	srv.metrics.RecordSignup(service.OutcomeSuccess)
	srv.log(ctx).Info("Account registered", slog.String("account_id", account.ID.String()))

	return output, nil
}

// Signin never reveals which half of the credential was wrong. For unknown
// emails it still runs one hash verification so both paths cost about the same.
func (srv *authService) Signin(ctx context.Context, input usecase.SigninInput) (*usecase.AuthOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.hasher.Verify(input.Password, srv.equalizerHash())
			srv.metrics.RecordSignin(service.OutcomeDenied)

			return nil, domainerrors.ErrCredentialsIncorrect
		}

		srv.metrics.RecordSignin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !srv.hasher.Verify(input.Password, account.PasswordHash) {
		srv.metrics.RecordSignin(service.OutcomeDenied)

		return nil, domainerrors.ErrCredentialsIncorrect
	}

	output, err := srv.issue(account)
	if err != nil {
		srv.metrics.RecordSignin(service.OutcomeError)

		return nil, err
	}

	srv.metrics.RecordSignin(service.OutcomeSuccess)
	srv.log(ctx).Debug("Signed in", slog.String("account_id", account.ID.String()))

	return output, nil
}

func (srv *authService) issue(account *entity.Account) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.Issue(account.ID, account.Email)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &usecase.AuthOutput{AccessToken: token}, nil
}

func (srv *authService) equalizerHash() string {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash("signin-timing-equalizer")
		if err == nil {
			srv.dummyHash = hash
		}
	})

	return srv.dummyHash
}

type noopAuthMetrics struct{}

func (noopAuthMetrics) RecordSignup(string) {}
func (noopAuthMetrics) RecordSignin(string) {}
func (noopAuthMetrics) RecordTokenRejected() {}
