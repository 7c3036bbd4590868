// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/config"
	"github.com/holomush/authcore/pkg/errutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, auth.DefaultSessionTTL, cfg.Session.TTL.Std())
	assert.Equal(t, auth.DefaultWebSessionTTL, cfg.Session.WebTTL.Std())
	assert.Equal(t, auth.DefaultHasherParams(), cfg.Hasher.Params())
	assert.Equal(t, "session_id", cfg.HTTP.CookieName)
	require.Error(t, cfg.RequireDatabase())
}

func TestLoad_NoSources(t *testing.T) {
	t.Setenv(config.EnvDatabaseURL, "")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg, "unset flags do not override defaults")
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://file@db/authcore
session:
  ttl: 2h
grpc:
  addr: file:9090
log:
  level: debug
`)
	t.Setenv(config.EnvDatabaseURL, "postgres://env@db/authcore")

	cfg, err := config.Load(newFlags(t, "--config", path, "--grpc-addr", "flag:9090", "--session-web-ttl", "15m"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://env@db/authcore", cfg.Database.URL, "env overrides file")
	assert.Equal(t, "flag:9090", cfg.GRPC.Addr, "flag overrides file")
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL.Std())
	assert.Equal(t, 15*time.Minute, cfg.Session.WebTTL.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.Default().HTTP, cfg.HTTP, "untouched sections keep defaults")
	require.NoError(t, cfg.RequireDatabase())
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv(config.EnvDatabaseURL, "postgres://env@db/authcore")

	cfg, err := config.Load(newFlags(t, "--database-url", "postgres://flag@db/authcore", "--cookie-secure"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://flag@db/authcore", cfg.Database.URL)
	assert.True(t, cfg.HTTP.CookieSecure)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(config.EnvDatabaseURL, "")

	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"unknown key", "sesion:\n  ttl: 1h\n", "CONFIG_SCHEMA_VIOLATION"},
		{"numeric duration", "session:\n  ttl: 30\n", "CONFIG_SCHEMA_VIOLATION"},
		{"bad log format", "log:\n  format: xml\n", "CONFIG_SCHEMA_VIOLATION"},
		{"malformed yaml", "session: [\n", "CONFIG_INVALID_YAML"},
		{"memory below parallelism floor", "hasher:\n  memory: 16\n  parallelism: 4\n", "AUTH_INVALID_HASHER_PARAMS"},
		{"zero ttl", "session:\n  ttl: 0s\n", "CONFIG_INVALID"},
		{"max ttl below ttl", "session:\n  ttl: 2h\n  max_ttl: 1h\n", "CONFIG_INVALID"},
		{"max ttl below web ttl", "session:\n  ttl: 1h\n  web_ttl: 3h\n  max_ttl: 2h\n", "CONFIG_INVALID"},
		{"tls without server name", "grpc:\n  tls_certs_dir: /etc/authcore/certs\n  tls_server_name: \"\"\n", "CONFIG_SCHEMA_VIOLATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := config.Load(newFlags(t, "--config", path))
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, tt.code)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
		errutil.AssertErrorCode(t, err, "CONFIG_READ_FAILED")
	})

	t.Run("negative max ttl flag", func(t *testing.T) {
		_, err := config.Load(newFlags(t, "--session-max-ttl", "-1h"))
		errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	})

	t.Run("blank tls server name flag", func(t *testing.T) {
		_, err := config.Load(newFlags(t, "--grpc-tls-certs-dir", t.TempDir(), "--grpc-tls-server-name", " "))
		errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	})

	t.Run("bad duration flag", func(t *testing.T) {
		_, err := config.Load(newFlags(t, "--session-ttl", "soon"))
		require.Error(t, err)
	})
}

func TestSessionConfig_EffectiveMaxTTL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SessionConfig
		want time.Duration
	}{
		{"unset falls back to ttl", config.SessionConfig{TTL: config.Duration(24 * time.Hour), WebTTL: config.Duration(time.Hour)}, 24 * time.Hour},
		{"unset falls back to longer web ttl", config.SessionConfig{TTL: config.Duration(time.Hour), WebTTL: config.Duration(2 * time.Hour)}, 2 * time.Hour},
		{"explicit value wins", config.SessionConfig{TTL: config.Duration(time.Hour), WebTTL: config.Duration(time.Hour), MaxTTL: config.Duration(72 * time.Hour)}, 72 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.EffectiveMaxTTL())
		})
	}
}

func TestLoad_SessionMaxTTLAndTLS(t *testing.T) {
	t.Setenv(config.EnvDatabaseURL, "")
	certs := t.TempDir()

	path := writeConfig(t, `
session:
  max_ttl: 168h
grpc:
  tls_server_name: auth.internal
`)
	cfg, err := config.Load(newFlags(t, "--config", path, "--grpc-tls-certs-dir", certs))
	require.NoError(t, err)
	assert.Equal(t, 168*time.Hour, cfg.Session.EffectiveMaxTTL())
	assert.True(t, cfg.GRPC.TLSEnabled())
	assert.Equal(t, certs, cfg.GRPC.TLSCertsDir)
	assert.Equal(t, "auth.internal", cfg.GRPC.TLSServerName)

	assert.False(t, config.Default().GRPC.TLSEnabled(), "plaintext unless a certs dir is set")
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Setenv(config.EnvDatabaseURL, "")

	cfg, err := config.Load(newFlags(t, "--config", writeConfig(t, "")))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestGenerateSchema(t *testing.T) {
	raw, err := config.GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, config.SchemaID, schema["$id"])
	assert.Equal(t, false, schema["additionalProperties"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"database", "session", "hasher", "grpc", "http", "metrics", "log", "gateway"} {
		assert.Contains(t, props, key)
	}
}

func TestYAML_IsValidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Database.URL = "postgres://u:secret@db:5432/authcore"

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "ttl: 24h0m0s")
	require.NoError(t, config.ValidateYAML(out))

	t.Setenv(config.EnvDatabaseURL, "")
	loaded, err := config.Load(newFlags(t, "--config", writeConfig(t, string(out))))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestRedacted(t *testing.T) {
	cfg := config.Default()
	cfg.Database.URL = "postgres://u:secret@db:5432/authcore"

	redacted := cfg.Redacted()
	assert.NotContains(t, redacted.Database.URL, "secret")
	assert.Contains(t, redacted.Database.URL, "u:xxxxx@db:5432")
	assert.Contains(t, cfg.Database.URL, "secret", "original is unchanged")

	cfg.Database.URL = "postgres://db/authcore"
	assert.Equal(t, cfg, cfg.Redacted())
}

func TestParseLevel(t *testing.T) {
	level, err := config.ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = config.ParseLevel("loud")
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
}
