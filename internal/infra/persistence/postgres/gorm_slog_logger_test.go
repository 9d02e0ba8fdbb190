package postgres

import (
	"bytes"
	"log/slog"
	"testing"

	"bookmarks/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const secretHash = "$argon2id$v=19$m=65536,t=1,p=4$U0FMVA$U0VDUkVUS0VZTUFURVJJQUw"

// openDryRunDB builds statements without a server; nothing is sent over the wire.
func openDryRunDB(t *testing.T, logs *bytes.Buffer, debug bool) *gorm.DB {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	db, err := gorm.Open(postgres.Open("host=localhost user=bookmarks dbname=bookmarks sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               newGormSlogLogger(logger, debug),
	})
	require.NoError(t, err)

	return db
}

func newSecretAccount() *entity.Account {
	return &entity.Account{ID: uuid.New(), Email: "me@example.com", PasswordHash: secretHash}
}

func TestGormSlogLogger_FailedInsertOmitsValues(t *testing.T) {
	var logs bytes.Buffer
	db := openDryRunDB(t, &logs, false)

	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:duplicate", func(tx *gorm.DB) {
		_ = tx.AddError(gorm.ErrDuplicatedKey)
	}))

	err := db.Create(fromAccountDomain(newSecretAccount())).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	out := logs.String()
	assert.Contains(t, out, "GORM query failed")
	assert.Contains(t, out, "password_hash")
	assert.Contains(t, out, "$3")
	assert.NotContains(t, out, secretHash)
	assert.NotContains(t, out, "me@example.com")
}

func TestGormSlogLogger_DebugQueryOmitsValues(t *testing.T) {
	var logs bytes.Buffer
	db := openDryRunDB(t, &logs, true)

	require.NoError(t, db.Create(fromAccountDomain(newSecretAccount())).Error)

	out := logs.String()
	assert.Contains(t, out, "GORM query")
	assert.NotContains(t, out, secretHash)
}

func TestGormSlogLogger_ParamsFilter(t *testing.T) {
	filter, ok := newGormSlogLogger(slog.New(slog.DiscardHandler), false).(gorm.ParamsFilter)
	require.True(t, ok)

	sql, params := filter.ParamsFilter(t.Context(), "INSERT INTO users (password_hash) VALUES ($1)", secretHash)

	assert.Equal(t, "INSERT INTO users (password_hash) VALUES ($1)", sql)
	assert.Empty(t, params)
}
