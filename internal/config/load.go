// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// EnvDatabaseURL overrides database.url when set.
const EnvDatabaseURL = "DATABASE_URL"

// FlagConfig names the flag holding the config file path.
const FlagConfig = "config"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"database-url":         "database.url",
	"session-ttl":          "session.ttl",
	"session-web-ttl":      "session.web_ttl",
	"session-max-ttl":      "session.max_ttl",
	"grpc-addr":            "grpc.addr",
	"grpc-tls-certs-dir":   "grpc.tls_certs_dir",
	"grpc-tls-server-name": "grpc.tls_server_name",
	"http-addr":            "http.addr",
	"cookie-secure":        "http.cookie_secure",
	"metrics-addr":         "metrics.addr",
	"log-format":           "log.format",
	"log-level":            "log.level",
	"auth-addr":            "gateway.auth_addr",
}

// RegisterFlags adds the config file flag and the config override flags to fs.
// Flag defaults are display-only; unset flags never override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "path to YAML config file")
	fs.String("database-url", "", "PostgreSQL connection URL")
	fs.String("session-ttl", d.Session.TTL.Std().String(), "lifetime of sessions issued over gRPC")
	fs.String("session-web-ttl", d.Session.WebTTL.Std().String(), "lifetime of cookie sessions")
	fs.String("session-max-ttl", "", "longest session lifetime a caller may request (default: larger of the two TTLs)")
	fs.String("grpc-addr", d.GRPC.Addr, "gRPC auth server listen address")
	fs.String("grpc-tls-certs-dir", "", "directory of mTLS certificates for the auth link (empty serves plaintext)")
	fs.String("grpc-tls-server-name", d.GRPC.TLSServerName, "server name in the auth server certificate")
	fs.String("http-addr", d.HTTP.Addr, "HTTP API listen address")
	fs.Bool("cookie-secure", d.HTTP.CookieSecure, "mark the session cookie Secure")
	fs.String("metrics-addr", d.Metrics.Addr, "metrics and health listen address (empty disables)")
	fs.String("log-format", d.Log.Format, "log format (json, text)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("auth-addr", d.Gateway.AuthAddr, "gRPC auth server address used by the gateway")
}

// Load builds the effective configuration. fs may be nil; flags it holds
// that were set explicitly take precedence over everything else.
func Load(fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	path := ""
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil {
			path = f.Value.String()
		}
	}
	if path != "" {
		if err := loadFile(k, path); err != nil {
			return Config{}, err
		}
	}

	if url := os.Getenv(EnvDatabaseURL); url != "" {
		if err := k.Set("database.url", url); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("source", EnvDatabaseURL).Wrap(err)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			Result:           &cfg,
			TagName:          "yaml",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").With("operation", "decode config").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		return oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
	}
	if err := ValidateYAML(data); err != nil {
		return oops.With("path", path).Wrap(err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
	}
	return nil
}
