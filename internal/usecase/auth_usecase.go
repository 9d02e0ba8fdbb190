// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bookmarks/internal/domain/entity"
)

// SignupInput is the credential submitted to create an account.
type SignupInput struct {
	Email    string
	Password string
}

// SigninInput is the credential submitted to obtain a token.
type SigninInput struct {
	Email    string
	Password string
}

// AuthOutput carries the freshly issued bearer token.
type AuthOutput struct {
	AccessToken string
}

// AuthUsecase registers and authenticates credentials.
type AuthUsecase interface {
	// Signup fails with domainerrors.ErrCredentialsTaken when the email is registered.
	Signup(ctx context.Context, input SignupInput) (*AuthOutput, error)

	// Signin fails with domainerrors.ErrCredentialsIncorrect for an unknown
	// email and for a wrong password alike.
	Signin(ctx context.Context, input SigninInput) (*AuthOutput, error)
}

// IdentityUsecase turns a verified token claim into the live account.
type IdentityUsecase interface {
	// Resolve fails with domainerrors.ErrUnauthenticated when the account no longer exists.
	Resolve(ctx context.Context, claim *entity.TokenClaim) (*entity.PublicAccount, error)
}
