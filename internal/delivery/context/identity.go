package context

import (
	"context"

	"bookmarks/internal/domain/entity"
)

type identityKey struct{}

// WithAccount attaches the authenticated caller. Only the auth middleware
// should call it, after the token has been verified and the account resolved.
func WithAccount(ctx context.Context, account *entity.PublicAccount) context.Context {
	return context.WithValue(ctx, identityKey{}, account)
}

// AccountFromContext returns the authenticated caller, if any.
func AccountFromContext(ctx context.Context) (*entity.PublicAccount, bool) {
	account, ok := ctx.Value(identityKey{}).(*entity.PublicAccount)

	return account, ok && account != nil
}
