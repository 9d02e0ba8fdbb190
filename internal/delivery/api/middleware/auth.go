package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "bookmarks/internal/delivery/context"
	domainerrors "bookmarks/internal/domain/errors"
	"bookmarks/internal/domain/service"
	"bookmarks/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerScheme = "Bearer"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	IdentityUC   usecase.IdentityUsecase
	Metrics      service.AuthMetrics `optional:"true"`
	Logger       *slog.Logger
}

// AuthMiddleware guards routes that need a live, authenticated account.
type AuthMiddleware struct {
	tokenSvc   service.TokenService
	identityUC usecase.IdentityUsecase
	metrics    service.AuthMetrics
	logger     *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:   params.TokenService,
		identityUC: params.IdentityUC,
		metrics:    params.Metrics,
		logger:     params.Logger,
	}
}

// Authenticate verifies the bearer token, re-reads the account it names and
// attaches the public account to the request context. Every rejection is
// the same 401 so callers cannot tell why a token was refused.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		claim, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			m.recordRejected()

			return domainerrors.ErrUnauthenticated
		}

		ctx := c.Request().Context()
		account, err := m.identityUC.Resolve(ctx, claim)
		if err != nil {
			if errors.Is(err, domainerrors.ErrUnauthenticated) {
				m.recordRejected()

				return domainerrors.ErrUnauthenticated
			}

			return err
		}

		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("account_id", account.ID.String()))
		ctx = deliverycontext.WithAccount(ctx, account)
		ctx = deliverycontext.WithLogger(ctx, logger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func (m *AuthMiddleware) recordRejected() {
	if m.metrics != nil {
		m.metrics.RecordTokenRejected()
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}
