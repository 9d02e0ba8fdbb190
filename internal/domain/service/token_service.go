package service

import (
	"errors"

	"bookmarks/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// structure, unexpected algorithm and expiry all look the same to callers.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies short-lived bearer tokens.
type TokenService interface {
	// Issue signs a token for the subject that expires after the configured TTL.
	Issue(subject uuid.UUID, email string) (string, error)

	// Verify returns the embedded claim or ErrInvalidToken.
	Verify(token string) (*entity.TokenClaim, error)
}
