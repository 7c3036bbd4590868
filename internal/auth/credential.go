// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"

	"github.com/google/uuid"
)

// Credential is a stored account: email, password hash and active flag.
// Deactivated credentials are retained; Active is the soft-delete marker.
type Credential struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Active       bool
}

// CredentialKey selects a credential by id or by email. Exactly one of the
// fields is set; build keys with CredentialByID or CredentialByEmail.
type CredentialKey struct {
	ID    uuid.UUID
	Email string
}

// CredentialByID selects a credential by id.
func CredentialByID(id uuid.UUID) CredentialKey {
	return CredentialKey{ID: id}
}

// CredentialByEmail selects a credential by email (case-sensitive).
func CredentialByEmail(email string) CredentialKey {
	return CredentialKey{Email: email}
}

// IsEmail reports whether the key selects by email.
func (k CredentialKey) IsEmail() bool {
	return k.ID == uuid.Nil
}

// String renders the key for logs.
func (k CredentialKey) String() string {
	if k.IsEmail() {
		return "email=" + k.Email
	}
	return "id=" + k.ID.String()
}

// CredentialUpdate holds the mutable fields of a credential.
type CredentialUpdate struct {
	PasswordHash string
	Active       bool
}

// CredentialRepository manages credential persistence.
type CredentialRepository interface {
	// Create inserts a new active credential. The store assigns the id.
	// Returns ErrDuplicateEmail if the email is already registered.
	Create(ctx context.Context, email, passwordHash string) (*Credential, error)

	// Get retrieves a credential regardless of its active flag.
	// Returns ErrNotFound if no record matches.
	Get(ctx context.Context, key CredentialKey) (*Credential, error)

	// Find is Get without the not-found error: (nil, nil) when absent.
	Find(ctx context.Context, key CredentialKey) (*Credential, error)

	// Update replaces the password hash and active flag.
	// Returns ErrNotFound if no record matches.
	Update(ctx context.Context, key CredentialKey, update CredentialUpdate) (*Credential, error)

	// UpdatePasswordHash replaces the password hash of an active credential
	// and never touches the active flag.
	// Returns ErrNotFound if no active record matches.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) (*Credential, error)

	// Deactivate sets active=false and returns the updated record.
	// Returns ErrNotFound if no record matches.
	Deactivate(ctx context.Context, key CredentialKey) (*Credential, error)
}
