// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session configuration defaults.
const (
	DefaultSessionTTL    = 24 * time.Hour // gRPC sign-in flow
	DefaultWebSessionTTL = time.Hour      // HTTP cookie flow
)

// Session is a stored proof of sign-in for one credential.
// Sessions are never updated in place; they are only created and deactivated.
type Session struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	ExpiresAt    time.Time
	CredentialID uuid.UUID
	Active       bool
}

// IsExpiredAt reports whether the session is expired at t.
// A session is still valid at exactly ExpiresAt.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// SessionKey selects sessions by session id or by owning credential id.
type SessionKey struct {
	ID           uuid.UUID
	CredentialID uuid.UUID
}

// SessionByID selects a single session.
func SessionByID(id uuid.UUID) SessionKey {
	return SessionKey{ID: id}
}

// SessionByCredential selects the sessions owned by a credential.
func SessionByCredential(credentialID uuid.UUID) SessionKey {
	return SessionKey{CredentialID: credentialID}
}

// IsCredential reports whether the key selects by owning credential.
func (k SessionKey) IsCredential() bool {
	return k.ID == uuid.Nil
}

// String renders the key for logs.
func (k SessionKey) String() string {
	if k.IsCredential() {
		return "credential_id=" + k.CredentialID.String()
	}
	return "id=" + k.ID.String()
}

// SessionRepository manages session persistence.
//
// There is deliberately no update method: a session's fields are fixed at
// creation and only the active flag changes, through Deactivate.
type SessionRepository interface {
	// Create inserts a new active session. The store assigns id and CreatedAt.
	Create(ctx context.Context, credentialID uuid.UUID, expiresAt time.Time) (*Session, error)

	// Get retrieves a session regardless of its active flag. A credential key
	// returns the most recently created session of that credential.
	// Returns ErrNotFound if no record matches.
	Get(ctx context.Context, key SessionKey) (*Session, error)

	// Find is Get without the not-found error: (nil, nil) when absent.
	Find(ctx context.Context, key SessionKey) (*Session, error)

	// Deactivate sets active=false. A credential key deactivates every active
	// session of that credential and returns the most recent one.
	// Returns ErrNotFound if nothing was deactivated.
	Deactivate(ctx context.Context, key SessionKey) (*Session, error)
}
