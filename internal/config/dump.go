// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"net/url"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Redacted returns a copy of c with the database password masked.
func (c Config) Redacted() Config {
	if c.Database.URL == "" {
		return c
	}
	u, err := url.Parse(c.Database.URL)
	if err != nil || u.User == nil {
		return c
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
		c.Database.URL = u.String()
	}
	return c
}

// YAML renders c in the config file format.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, oops.Code("CONFIG_ENCODE_FAILED").Wrap(err)
	}
	return out, nil
}
