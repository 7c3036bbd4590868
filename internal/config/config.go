// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads authcore configuration from defaults, an optional
// YAML file, the DATABASE_URL environment variable and command-line flags,
// in that order of increasing precedence.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

// Config is the complete authcore configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Hasher   HasherConfig   `yaml:"hasher"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	HTTP     HTTPConfig     `yaml:"http"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
	Gateway  GatewayConfig  `yaml:"gateway"`
}

// DatabaseConfig locates PostgreSQL.
type DatabaseConfig struct {
	URL            string   `yaml:"url" jsonschema:"description=PostgreSQL connection URL"`
	ConnectRetries uint64   `yaml:"connect_retries" jsonschema:"description=Extra ping attempts at startup"`
	ConnectBackoff Duration `yaml:"connect_backoff" jsonschema:"description=First retry delay; doubles per attempt"`
}

// SessionConfig sets session lifetimes.
type SessionConfig struct {
	TTL    Duration `yaml:"ttl" jsonschema:"description=Lifetime of sessions issued over gRPC"`
	WebTTL Duration `yaml:"web_ttl" jsonschema:"description=Lifetime of cookie sessions issued over HTTP"`
	MaxTTL Duration `yaml:"max_ttl,omitempty" jsonschema:"description=Longest lifetime a caller may request; defaults to the larger of ttl and web_ttl"`
}

// EffectiveMaxTTL returns MaxTTL, or the larger of TTL and WebTTL when unset.
func (s SessionConfig) EffectiveMaxTTL() time.Duration {
	if s.MaxTTL > 0 {
		return s.MaxTTL.Std()
	}
	return max(s.TTL.Std(), s.WebTTL.Std())
}

// HasherConfig holds argon2id parameters.
type HasherConfig struct {
	Memory      uint32 `yaml:"memory" jsonschema:"minimum=8,description=Memory in KiB"`
	Iterations  uint32 `yaml:"iterations" jsonschema:"minimum=1"`
	Parallelism uint8  `yaml:"parallelism" jsonschema:"minimum=1,maximum=255"`
	SaltLength  uint32 `yaml:"salt_length" jsonschema:"minimum=8"`
	KeyLength   uint32 `yaml:"key_length" jsonschema:"minimum=16"`
}

// Params converts the config to auth.HasherParams.
func (h HasherConfig) Params() auth.HasherParams {
	return auth.HasherParams{
		Memory:      h.Memory,
		Iterations:  h.Iterations,
		Parallelism: h.Parallelism,
		SaltLength:  h.SaltLength,
		KeyLength:   h.KeyLength,
	}
}

// GRPCConfig configures the auth RPC listener.
type GRPCConfig struct {
	Addr string `yaml:"addr" jsonschema:"description=Listen address of the gRPC auth server"`
	// TLSCertsDir holds the CA, server and client certificates for mutual
	// TLS. Empty disables TLS.
	TLSCertsDir   string `yaml:"tls_certs_dir,omitempty" jsonschema:"description=Directory of mTLS certificates; empty serves plaintext"`
	TLSServerName string `yaml:"tls_server_name" jsonschema:"minLength=1,description=Server name in the auth server certificate"`
}

// TLSEnabled reports whether the auth link uses mutual TLS.
func (g GRPCConfig) TLSEnabled() bool {
	return strings.TrimSpace(g.TLSCertsDir) != ""
}

// HTTPConfig configures the cookie-session HTTP API.
type HTTPConfig struct {
	Addr         string `yaml:"addr" jsonschema:"description=Listen address of the HTTP API"`
	CookieName   string `yaml:"cookie_name" jsonschema:"minLength=1"`
	CookieSecure bool   `yaml:"cookie_secure" jsonschema:"description=Mark the session cookie Secure"`
}

// MetricsConfig configures the observability listener. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Format string `yaml:"format" jsonschema:"enum=json,enum=text"`
	Level  string `yaml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// GatewayConfig configures the gateway command.
type GatewayConfig struct {
	AuthAddr string `yaml:"auth_addr" jsonschema:"description=Address of the gRPC auth server"`
}

// Default returns the built-in configuration.
func Default() Config {
	hp := auth.DefaultHasherParams()
	return Config{
		Database: DatabaseConfig{
			ConnectRetries: 5,
			ConnectBackoff: Duration(500 * time.Millisecond),
		},
		Session: SessionConfig{
			TTL:    Duration(auth.DefaultSessionTTL),
			WebTTL: Duration(auth.DefaultWebSessionTTL),
		},
		Hasher: HasherConfig{
			Memory:      hp.Memory,
			Iterations:  hp.Iterations,
			Parallelism: hp.Parallelism,
			SaltLength:  hp.SaltLength,
			KeyLength:   hp.KeyLength,
		},
		GRPC:    GRPCConfig{Addr: "127.0.0.1:9090", TLSServerName: "authcore"},
		HTTP:    HTTPConfig{Addr: "127.0.0.1:8080", CookieName: "session_id"},
		Metrics: MetricsConfig{Addr: "127.0.0.1:9100"},
		Log:     LogConfig{Format: "json", Level: "info"},
		Gateway: GatewayConfig{AuthAddr: "127.0.0.1:9090"},
	}
}

// Validate checks values that a schema cannot express.
func (c Config) Validate() error {
	if c.Session.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").With("key", "session.ttl").Errorf("session.ttl must be positive")
	}
	if c.Session.WebTTL <= 0 {
		return oops.Code("CONFIG_INVALID").With("key", "session.web_ttl").Errorf("session.web_ttl must be positive")
	}
	if c.Session.MaxTTL < 0 {
		return oops.Code("CONFIG_INVALID").With("key", "session.max_ttl").Errorf("session.max_ttl must not be negative")
	}
	if c.Session.MaxTTL > 0 && (c.Session.MaxTTL < c.Session.TTL || c.Session.MaxTTL < c.Session.WebTTL) {
		return oops.Code("CONFIG_INVALID").
			With("key", "session.max_ttl").
			Errorf("session.max_ttl must be at least session.ttl and session.web_ttl")
	}
	if c.GRPC.TLSEnabled() && strings.TrimSpace(c.GRPC.TLSServerName) == "" {
		return oops.Code("CONFIG_INVALID").With("key", "grpc.tls_server_name").Errorf("grpc.tls_server_name is required with grpc.tls_certs_dir")
	}
	if err := c.Hasher.Params().Validate(); err != nil {
		return oops.Code("CONFIG_INVALID").With("key", "hasher").Wrap(err)
	}
	if c.HTTP.CookieName == "" {
		return oops.Code("CONFIG_INVALID").With("key", "http.cookie_name").Errorf("http.cookie_name is required")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return oops.Code("CONFIG_INVALID").With("key", "log.format").Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// RequireDatabase returns an error when no database URL is configured.
func (c Config) RequireDatabase() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "database.url").
			Errorf("database URL is required (set database.url, --database-url or DATABASE_URL)")
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, oops.Code("CONFIG_INVALID").With("key", "log.level").Errorf("unknown log level %q", level)
	}
	return l, nil
}

// Duration is a time.Duration written as a Go duration string ("1h30m") in
// YAML and JSON.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrapf(err, "invalid duration %q", string(text))
	}
	*d = Duration(parsed)
	return nil
}
