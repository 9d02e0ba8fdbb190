package config

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

const (
	defaultSSLMode        = "disable"
	defaultConnectRetries = 5
	defaultConnectBackoff = 500 * time.Millisecond
)

// PostgresConfig describes the primary, optional read replicas and pool settings.
type PostgresConfig struct {
	Master   ConnectionConfig   `json:"master" yaml:"master"`
	Replicas []ConnectionConfig `json:"replicas" yaml:"replicas" validate:"dive"`
	Database string             `json:"database" yaml:"database" validate:"required"`
	SSLMode  string             `json:"sslMode" yaml:"sslMode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	TimeZone string             `json:"timeZone" yaml:"timeZone"`

	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns" validate:"gte=0"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `json:"connMaxIdleTime" yaml:"connMaxIdleTime"`

	// ConnectRetries bounds the startup ping; the server does not listen until it succeeds.
	ConnectRetries uint64        `json:"connectRetries" yaml:"connectRetries"`
	ConnectBackoff time.Duration `json:"connectBackoff" yaml:"connectBackoff"`

	// AutoMigrate applies pending migrations before serving.
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

type ConnectionConfig struct {
	Host     string `json:"host" yaml:"host" validate:"required"`
	Port     string `json:"port" yaml:"port" validate:"required"`
	UserName string `json:"userName" yaml:"userName"`
	Password string `json:"password" yaml:"password"`
}

func (p *PostgresConfig) applyDefaults() {
	if p.SSLMode == "" {
		p.SSLMode = defaultSSLMode
	}
	if p.TimeZone == "" {
		p.TimeZone = "UTC"
	}
	if p.ConnectRetries == 0 {
		p.ConnectRetries = defaultConnectRetries
	}
	if p.ConnectBackoff == 0 {
		p.ConnectBackoff = defaultConnectBackoff
	}
}

// DSN renders the keyword/value connection string used by the GORM driver.
func (p *PostgresConfig) DSN(conn ConnectionConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		conn.Host, conn.Port, conn.UserName, conn.Password, p.Database, p.SSLMode, p.TimeZone,
	)
}

// URL renders the primary as a postgres:// URL, the form golang-migrate expects.
func (p *PostgresConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Master.UserName, p.Master.Password),
		Host:     net.JoinHostPort(p.Master.Host, p.Master.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}

	return u.String()
}
