// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm, keeping the domain pure.
type PasswordHasher interface {
	// Hash derives a salted, self-describing hash. Two calls with the same
	// password return different strings.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash. A malformed hash
	// yields false, never an error.
	Verify(password, encodedHash string) bool
}
