// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

const sessionColumns = `id, created_at, expires_at, credential_id, active`

const (
	selectSessionByID         = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	selectSessionByCredential = `SELECT ` + sessionColumns + ` FROM sessions
		WHERE credential_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`

	deactivateSessionByID = `UPDATE sessions SET active = false
		WHERE id = $1 RETURNING ` + sessionColumns
	deactivateSessionsByCredential = `WITH deactivated AS (
			UPDATE sessions SET active = false
			WHERE credential_id = $1 AND active
			RETURNING ` + sessionColumns + `
		)
		SELECT ` + sessionColumns + ` FROM deactivated
		ORDER BY created_at DESC, id DESC LIMIT 1`
)

// SessionRepository implements auth.SessionRepository using PostgreSQL.
type SessionRepository struct {
	pool poolIface
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool poolIface) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create stores a new active session. The database assigns id and created_at.
func (r *SessionRepository) Create(ctx context.Context, credentialID uuid.UUID, expiresAt time.Time) (*auth.Session, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (credential_id, expires_at)
		VALUES ($1, $2)
		RETURNING `+sessionColumns,
		credentialID.String(), expiresAt,
	)

	session, err := scanSession(row)
	if err != nil {
		return nil, oops.Code("SESSION_CREATE_FAILED").
			With("operation", "insert session").
			With("credential_id", credentialID.String()).
			Wrap(err)
	}
	return session, nil
}

// Get retrieves a session regardless of its active flag.
func (r *SessionRepository) Get(ctx context.Context, key auth.SessionKey) (*auth.Session, error) {
	query := selectSessionByID
	if key.IsCredential() {
		query = selectSessionByCredential
	}

	session, err := scanSession(r.pool.QueryRow(ctx, query, sessionArg(key)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("SESSION_NOT_FOUND").
			With("key", key.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("SESSION_GET_FAILED").
			With("operation", "get session").
			With("key", key.String()).
			Wrap(err)
	}
	return session, nil
}

// Find is Get returning (nil, nil) when no session matches.
func (r *SessionRepository) Find(ctx context.Context, key auth.SessionKey) (*auth.Session, error) {
	session, err := r.Get(ctx, key)
	if errors.Is(err, auth.ErrNotFound) {
		return nil, nil
	}
	return session, err
}

// Deactivate soft-deletes sessions. By id, an already inactive session is
// returned again. By credential, only active sessions are touched and the
// most recent of them is returned.
func (r *SessionRepository) Deactivate(ctx context.Context, key auth.SessionKey) (*auth.Session, error) {
	query := deactivateSessionByID
	if key.IsCredential() {
		query = deactivateSessionsByCredential
	}

	session, err := scanSession(r.pool.QueryRow(ctx, query, sessionArg(key)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("SESSION_NOT_FOUND").
			With("key", key.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("SESSION_DEACTIVATE_FAILED").
			With("operation", "deactivate session").
			With("key", key.String()).
			Wrap(err)
	}
	return session, nil
}

func sessionArg(key auth.SessionKey) string {
	if key.IsCredential() {
		return key.CredentialID.String()
	}
	return key.ID.String()
}

// scanSession scans a single row into a Session.
// pgx.ErrNoRows is returned unwrapped for callers to handle.
func scanSession(row pgx.Row) (*auth.Session, error) {
	var (
		idStr, credentialIDStr string
		session                auth.Session
	)
	err := row.Scan(&idStr, &session.CreatedAt, &session.ExpiresAt, &credentialIDStr, &session.Active)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with operation context
	}

	session.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("SESSION_INVALID_ID").
			With("operation", "parse session id").
			With("id", idStr).
			Wrap(err)
	}
	session.CredentialID, err = uuid.Parse(credentialIDStr)
	if err != nil {
		return nil, oops.Code("SESSION_INVALID_CREDENTIAL_ID").
			With("operation", "parse credential id").
			With("credential_id", credentialIDStr).
			Wrap(err)
	}
	return &session, nil
}

// Compile-time interface check.
var _ auth.SessionRepository = (*SessionRepository)(nil)
