// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/pkg/errutil"
)

// autoMigrateMockMigrator implements AutoMigrator for testing.
type autoMigrateMockMigrator struct {
	upCalled    bool
	upError     error
	closeCalled bool
	closeError  error
}

func (m *autoMigrateMockMigrator) Up() error {
	m.upCalled = true
	return m.upError
}

func (m *autoMigrateMockMigrator) Close() error {
	m.closeCalled = true
	return m.closeError
}

func TestParseAutoMigrate(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"true", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"FALSE", false},
		{"maybe", true},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(EnvAutoMigrate, tt.value)
			assert.Equal(t, tt.want, parseAutoMigrate())
		})
	}
}

func TestRunAutoMigration(t *testing.T) {
	t.Run("applies and closes", func(t *testing.T) {
		m := &autoMigrateMockMigrator{}
		var gotURL string

		err := runAutoMigration("postgres://db/authcore", func(url string) (AutoMigrator, error) {
			gotURL = url
			return m, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "postgres://db/authcore", gotURL)
		assert.True(t, m.upCalled)
		assert.True(t, m.closeCalled)
	})

	t.Run("factory failure", func(t *testing.T) {
		err := runAutoMigration("postgres://db/authcore", func(string) (AutoMigrator, error) {
			return nil, errors.New("bad url")
		})
		errutil.AssertErrorCode(t, err, "MIGRATION_INIT_FAILED")
	})

	t.Run("up failure still closes", func(t *testing.T) {
		m := &autoMigrateMockMigrator{upError: errors.New("dirty database")}

		err := runAutoMigration("postgres://db/authcore", func(string) (AutoMigrator, error) {
			return m, nil
		})
		errutil.AssertErrorCode(t, err, "AUTO_MIGRATION_FAILED")
		assert.True(t, m.closeCalled)
	})

	t.Run("close failure is not fatal", func(t *testing.T) {
		m := &autoMigrateMockMigrator{closeError: errors.New("close failed")}

		err := runAutoMigration("postgres://db/authcore", func(string) (AutoMigrator, error) {
			return m, nil
		})
		require.NoError(t, err)
	})
}
