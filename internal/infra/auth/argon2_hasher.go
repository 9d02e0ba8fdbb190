package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"bookmarks/config"
	"bookmarks/internal/domain/service"
	"bookmarks/internal/errors"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Prefix = "$argon2id$"
	maxKeyLength = 1024
	maxMemoryKiB = 4 * 1024 * 1024
)

// argon2Hasher implements PasswordHasher with argon2id and PHC-formatted output:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
type argon2Hasher struct {
	params config.Argon2Config
}

// NewArgon2Hasher returns a hasher using the configured cost parameters.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	params := config.DefaultArgon2()
	if cfg.Auth != nil && cfg.Auth.Argon2.Memory != 0 {
		params = cfg.Auth.Argon2
	}

	return &argon2Hasher{params: params}
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *argon2Hasher) Verify(password, encodedHash string) bool {
	decoded, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), decoded.salt, decoded.iterations, decoded.memory, decoded.parallelism, uint32(len(decoded.key)))

	return subtle.ConstantTimeCompare(computed, decoded.key) == 1
}

type argon2Hash struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func decodeArgon2Hash(encoded string) (*argon2Hash, error) {
	if !strings.HasPrefix(encoded, argon2Prefix) {
		return nil, errors.New("unsupported hash algorithm")
	}

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, errors.New("invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, errors.Wrap(err, "parse version")
	}
	if version != argon2.Version {
		return nil, errors.Errorf("unsupported argon2 version %d", version)
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return nil, errors.Wrap(err, "parse parameters")
	}
	if iterations == 0 || threads == 0 || threads > 255 || memory < 8*threads || memory > maxMemoryKiB {
		return nil, errors.New("parameters out of range")
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return nil, errors.Wrap(err, "decode salt")
	}

	key, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil {
		return nil, errors.Wrap(err, "decode key")
	}
	if len(key) == 0 || len(key) > maxKeyLength {
		return nil, errors.Errorf("invalid key length %d", len(key))
	}

	return &argon2Hash{
		memory:      memory,
		iterations:  iterations,
		parallelism: uint8(threads),
		salt:        salt,
		key:         key,
	}, nil
}
