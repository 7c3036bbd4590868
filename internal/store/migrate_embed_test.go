// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsFS_EmbeddedFiles(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err, "should read embedded migrations directory")

	fileNames := make(map[string]bool)
	for _, entry := range entries {
		fileNames[entry.Name()] = true
	}

	for _, expected := range []string{
		"000001_create_credentials.up.sql",
		"000001_create_credentials.down.sql",
		"000002_create_sessions.up.sql",
		"000002_create_sessions.down.sql",
		"000003_drop_session_expiry_check.up.sql",
		"000003_drop_session_expiry_check.down.sql",
	} {
		assert.True(t, fileNames[expected], "should contain %s", expected)
	}

	pattern := regexp.MustCompile(`^\d{6}_\w+\.(up|down)\.sql$`)
	for _, entry := range entries {
		assert.True(t, pattern.MatchString(entry.Name()),
			"file %s should match pattern NNNNNN_name.(up|down).sql", entry.Name())
	}
}
