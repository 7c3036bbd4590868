// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/holomush/authcore/internal/auth"
)

func TestSession_IsExpiredAt(t *testing.T) {
	expiresAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := &auth.Session{ExpiresAt: expiresAt}

	assert.False(t, s.IsExpiredAt(expiresAt.Add(-time.Second)))
	assert.False(t, s.IsExpiredAt(expiresAt), "valid at exactly the expiry instant")
	assert.True(t, s.IsExpiredAt(expiresAt.Add(time.Nanosecond)))
}

func TestKeys(t *testing.T) {
	id := uuid.New()

	assert.True(t, auth.CredentialByEmail("a@b.com").IsEmail())
	assert.False(t, auth.CredentialByID(id).IsEmail())
	assert.Equal(t, "email=a@b.com", auth.CredentialByEmail("a@b.com").String())
	assert.Equal(t, "id="+id.String(), auth.CredentialByID(id).String())

	assert.True(t, auth.SessionByCredential(id).IsCredential())
	assert.False(t, auth.SessionByID(id).IsCredential())
	assert.Equal(t, "credential_id="+id.String(), auth.SessionByCredential(id).String())
	assert.Equal(t, "id="+id.String(), auth.SessionByID(id).String())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    auth.Kind
		message string
	}{
		{"invalid input", auth.NewInvalidInputError("invalid email"), auth.KindInvalidInput, "invalid email"},
		{"invalid credentials", auth.NewInvalidCredentialsError(), auth.KindInvalidCredentials, "invalid credentials"},
		{"internal", auth.NewInternalError(), auth.KindInternal, "internal server error"},
		{"plain error", errors.New("boom"), auth.KindInternal, "internal server error"},
		{"other oops code", oops.Code("SOMETHING_ELSE").Errorf("boom"), auth.KindInternal, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, auth.KindOf(tt.err))
			assert.Equal(t, tt.message, auth.Message(tt.err))
		})
	}

	assert.Equal(t, "invalid_input", auth.KindInvalidInput.String())
	assert.Equal(t, "invalid_credentials", auth.KindInvalidCredentials.String())
	assert.Equal(t, "internal", auth.KindInternal.String())
}
