// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/pkg/errutil"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"test@gmail.com", true},
		{"a@b.com", true},
		{"first.last+tag@sub.example.co", true},
		{"under_score%x-y@host-name.io", true},
		{"UPPER@EXAMPLE.ORG", true},
		{"test.com", false},
		{"test@", false},
		{"test", false},
		{"", false},
		{"@example.com", false},
		{"user@example", false},
		{"user@example.c", false},
		{"user@example.c0m", false},
		{"user name@example.com", false},
		{"user@exa mple.com", false},
		{"user@@example.com", false},
		{" test@gmail.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.ValidEmail(tt.email))
		})
	}
}

func TestParseSessionID(t *testing.T) {
	id := uuid.New()

	t.Run("accepts canonical form", func(t *testing.T) {
		parsed, err := auth.ParseSessionID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
		assert.True(t, auth.ValidSessionID(id.String()))
	})

	t.Run("accepts upper case", func(t *testing.T) {
		_, err := auth.ParseSessionID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
		require.NoError(t, err)
	})

	invalid := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"missing hyphen", "6ba7b8109dad-11d1-80b4-00c04fd430c8"},
		{"space inserted", "6ba7b810-9dad-11d1-80b4 -00c04fd430c8"},
		{"hyphenless", "6ba7b8109dad11d180b400c04fd430c8"},
		{"braced", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"},
		{"urn", "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{"non hex", "zba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{"hyphen moved", "6ba7b81-09dad-11d1-80b4-00c04fd430c8"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := auth.ParseSessionID(tt.id)
			require.Error(t, err)
			assert.Equal(t, uuid.Nil, parsed)
			errutil.AssertErrorCode(t, err, auth.CodeInvalidInput)
			assert.Equal(t, auth.MsgInvalidSessionID, auth.Message(err))
			assert.False(t, auth.ValidSessionID(tt.id))
		})
	}
}

func TestParseCredentialID(t *testing.T) {
	id := uuid.New()

	parsed, err := auth.ParseCredentialID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, raw := range []string{
		"",
		strings.ReplaceAll(id.String(), "-", ""),
		"{" + id.String() + "}",
		"urn:uuid:" + id.String(),
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := auth.ParseCredentialID(raw)
			errutil.AssertErrorCode(t, err, auth.CodeInvalidInput)
			assert.Equal(t, auth.MsgInvalidCredentialID, auth.Message(err))
		})
	}
}
