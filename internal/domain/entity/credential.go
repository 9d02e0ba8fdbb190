package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is an email/password pair as submitted by a client. It is never persisted.
type Credential struct {
	Email    string
	Password string
}

// TokenClaim is the identity asserted by a verified bearer token.
type TokenClaim struct {
	Subject   uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
