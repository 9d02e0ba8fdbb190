package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  serviceName: bookmarks
  log:
    level: info
http:
  port: 8080
postgres:
  master:
    host: db
    port: "5432"
    userName: app
    password: "p@ss word"
  database: bookmarks
secretKey:
  access: ""
auth:
  accessTokenTTL: 5m
`

func writeConfig(t *testing.T, name, body string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o600))
	t.Chdir(dir)
}

func TestLoad_EnvOverridesAndDefaults(t *testing.T) {
	writeConfig(t, "app", testYAML)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("POSTGRES_MASTER_HOST", "primary.internal")

	cfg, err := Load("app")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, "primary.internal", cfg.Postgres.Master.Host)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, DefaultArgon2(), cfg.Auth.Argon2)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, defaultMetricsPath, cfg.Metrics.Path)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_MissingSecretFailsFast(t *testing.T) {
	writeConfig(t, "app", testYAML)

	_, err := Load("app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Access")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml not found")
}

func TestLoad_ReplicasFromEnv(t *testing.T) {
	writeConfig(t, "app", testYAML)
	t.Setenv("SECRETKEY_ACCESS", "s")
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-a")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5433")
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-b")
	t.Setenv("POSTGRES_REPLICAS_1_PORT", "5434")

	cfg, err := Load("app")
	require.NoError(t, err)
	require.Len(t, cfg.Postgres.Replicas, 2)
	assert.Equal(t, "replica-b", cfg.Postgres.Replicas[1].Host)
}

func TestPostgresConfig_URL(t *testing.T) {
	p := &PostgresConfig{
		Master:   ConnectionConfig{Host: "db", Port: "5432", UserName: "app", Password: "p@ss word"},
		Database: "bookmarks",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/bookmarks?sslmode=disable", p.URL())
	assert.Contains(t, p.DSN(p.Master), "host=db port=5432 user=app")
}

func newValidConfig() *Config {
	cfg := &Config{
		HTTP: HTTPConfig{Port: 8080},
		Postgres: &PostgresConfig{
			Master:   ConnectionConfig{Host: "db", Port: "5432"},
			Database: "bookmarks",
		},
		SecretKey: SecretKeyConfig{Access: "secret"},
	}
	cfg.ApplyDefaults()

	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, newValidConfig().Validate())
}

func TestValidate_RejectsUnverifiableArgon2(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Argon2Config)
		want   string
	}{
		{
			name:   "memory below eight KiB per lane",
			mutate: func(a *Argon2Config) { a.Memory, a.Parallelism = 16, 4 },
			want:   "auth.argon2.memory",
		},
		{
			name:   "key longer than the verifier accepts",
			mutate: func(a *Argon2Config) { a.KeyLength = 2048 },
			want:   "KeyLength",
		},
		{
			name:   "short salt",
			mutate: func(a *Argon2Config) { a.SaltLength = 4 },
			want:   "SaltLength",
		},
		{
			name:   "memory above the verifier ceiling",
			mutate: func(a *Argon2Config) { a.Memory = 8 * 1024 * 1024 },
			want:   "Memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newValidConfig()
			tt.mutate(&cfg.Auth.Argon2)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_MaxRequestBodySize(t *testing.T) {
	for _, size := range []string{"100KB", "2M", "1G"} {
		cfg := newValidConfig()
		cfg.HTTP.MaxRequestBodySize = size

		assert.NoError(t, cfg.Validate(), size)
	}

	cfg := newValidConfig()
	cfg.HTTP.MaxRequestBodySize = "lots"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxRequestBodySize")
}
