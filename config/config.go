package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
)

const (
	defaultConfigName         = "config"
	defaultMaxRequestBodySize = "100KB"
	defaultAccessTokenTTL     = 15 * time.Minute
	defaultMetricsPath        = "/metrics"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP HTTPConfig `json:"http" yaml:"http"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres" mapstructure:"postgres" validate:"required"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// RateLimit throttles the unauthenticated /auth endpoints per client IP.
	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

type HTTPConfig struct {
	Port int `json:"port" yaml:"port" validate:"required,min=1,max=65535"`
	// MaxRequestBodySize accepts echo's size notation, e.g. "100KB" or "2M".
	MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
	AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
	Timeouts           struct {
		ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	} `json:"timeouts" yaml:"timeouts"`
}

// SecretKeyConfig holds the process-wide signing secrets. Access is never logged.
type SecretKeyConfig struct {
	Access string `json:"access" yaml:"access" validate:"required"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	AccessTokenTTL time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL" validate:"gte=0"`
	Argon2         Argon2Config  `json:"argon2" yaml:"argon2"`
}

// Argon2Config holds the argon2id cost parameters used for new hashes.
// Existing hashes carry their own parameters and keep verifying after a change.
// The bounds match what the verifier accepts when it decodes a stored hash.
type Argon2Config struct {
	Memory      uint32 `json:"memory" yaml:"memory" validate:"min=8,max=4194304"`
	Iterations  uint32 `json:"iterations" yaml:"iterations" validate:"min=1"`
	Parallelism uint8  `json:"parallelism" yaml:"parallelism" validate:"min=1"`
	SaltLength  uint32 `json:"saltLength" yaml:"saltLength" validate:"min=8"`
	KeyLength   uint32 `json:"keyLength" yaml:"keyLength" validate:"min=1,max=1024"`
}

type RateLimitConfig struct {
	Enabled           bool          `json:"enabled" yaml:"enabled"`
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond" validate:"gte=0"`
	Burst             int           `json:"burst" yaml:"burst" validate:"gte=0"`
	ExpiresIn         time.Duration `json:"expiresIn" yaml:"expiresIn"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// DefaultArgon2 returns the OWASP baseline for argon2id.
func DefaultArgon2() Argon2Config {
	return Argon2Config{
		Memory:      64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func New() (*Config, error) {
	return Load(defaultConfigName)
}

// Load reads <name>.yaml from the usual search paths, applies environment
// overrides and defaults, and validates the result.
func Load(name string) (*Config, error) {
	cfg, err := LoadWithEnv[Config](name, "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Postgres != nil {
		// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
		if replicas := buildReplicasFromEnv(); len(replicas) > 0 {
			cfg.Postgres.Replicas = replicas
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every optional setting that was left empty.
func (cfg *Config) ApplyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = defaultAccessTokenTTL
	}
	cfg.Auth.Argon2 = mergeArgon2(cfg.Auth.Argon2, DefaultArgon2())

	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{Enabled: true}
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.RateLimit.ExpiresIn == 0 {
		cfg.RateLimit.ExpiresIn = 3 * time.Minute
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{Enabled: true}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}

	if cfg.Postgres != nil {
		cfg.Postgres.applyDefaults()
	}
}

// Validate checks the struct tags, then the settings tags cannot express.
func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if _, err := bytes.Parse(cfg.HTTP.MaxRequestBodySize); err != nil {
		return errors.Wrapf(err, "invalid configuration: http.maxRequestBodySize %q", cfg.HTTP.MaxRequestBodySize)
	}

	if cfg.Auth != nil {
		if argon := cfg.Auth.Argon2; argon.Memory < 8*uint32(argon.Parallelism) {
			return errors.Errorf("invalid configuration: auth.argon2.memory %d KiB is below 8 KiB per lane (parallelism %d)",
				argon.Memory, argon.Parallelism)
		}
	}

	return nil
}

func mergeArgon2(cur, def Argon2Config) Argon2Config {
	if cur.Memory == 0 {
		cur.Memory = def.Memory
	}
	if cur.Iterations == 0 {
		cur.Iterations = def.Iterations
	}
	if cur.Parallelism == 0 {
		cur.Parallelism = def.Parallelism
	}
	if cur.SaltLength == 0 {
		cur.SaltLength = def.SaltLength
	}
	if cur.KeyLength == 0 {
		cur.KeyLength = def.KeyLength
	}

	return cur
}
