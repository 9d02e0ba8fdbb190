package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"bookmarks/config"
	"bookmarks/internal/domain/service"
	"bookmarks/internal/infra/auth"

	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConfig keeps argon2 cheap so tests exercising the real hasher stay fast.
func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "impl-test-secret"},
		Auth: &config.AuthConfig{
			AccessTokenTTL: 15 * time.Minute,
			Argon2: config.Argon2Config{
				Memory:      64,
				Iterations:  1,
				Parallelism: 1,
				SaltLength:  16,
				KeyLength:   32,
			},
		},
	}
}

func newRealAuthServices(t *testing.T) (service.PasswordHasher, service.TokenService) {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return auth.NewArgon2Hasher(cfg), tokens
}
