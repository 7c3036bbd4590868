// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

const credentialColumns = `id, email, password_hash, active`

// Queries are fixed per key column; keys never reach the SQL text.
const (
	selectCredentialByID    = `SELECT ` + credentialColumns + ` FROM credentials WHERE id = $1`
	selectCredentialByEmail = `SELECT ` + credentialColumns + ` FROM credentials WHERE email = $1`

	updateCredentialByID = `UPDATE credentials SET password_hash = $2, active = $3
		WHERE id = $1 RETURNING ` + credentialColumns
	updateCredentialByEmail = `UPDATE credentials SET password_hash = $2, active = $3
		WHERE email = $1 RETURNING ` + credentialColumns

	updatePasswordHash = `UPDATE credentials SET password_hash = $2
		WHERE id = $1 AND active RETURNING ` + credentialColumns

	deactivateCredentialByID = `UPDATE credentials SET active = false
		WHERE id = $1 AND active RETURNING ` + credentialColumns
	deactivateCredentialByEmail = `UPDATE credentials SET active = false
		WHERE email = $1 AND active RETURNING ` + credentialColumns
)

// CredentialRepository implements auth.CredentialRepository using PostgreSQL.
type CredentialRepository struct {
	pool poolIface
}

// NewCredentialRepository creates a new CredentialRepository.
// pool is typically a *pgxpool.Pool.
func NewCredentialRepository(pool poolIface) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

// Create inserts an active credential. A taken email, active or not,
// returns auth.ErrDuplicateEmail.
func (r *CredentialRepository) Create(ctx context.Context, email, passwordHash string) (*auth.Credential, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO credentials (email, password_hash)
		VALUES ($1, $2)
		RETURNING `+credentialColumns,
		email, passwordHash,
	)

	cred, err := scanCredential(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, oops.Code("CREDENTIAL_DUPLICATE_EMAIL").
				With("constraint", pgErr.ConstraintName).
				Wrap(auth.ErrDuplicateEmail)
		}
		return nil, oops.Code("CREDENTIAL_CREATE_FAILED").
			With("operation", "insert credential").
			Wrap(err)
	}
	return cred, nil
}

// Get retrieves a credential regardless of its active flag.
func (r *CredentialRepository) Get(ctx context.Context, key auth.CredentialKey) (*auth.Credential, error) {
	query := selectCredentialByID
	if key.IsEmail() {
		query = selectCredentialByEmail
	}

	cred, err := scanCredential(r.pool.QueryRow(ctx, query, credentialArg(key)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CREDENTIAL_NOT_FOUND").
			With("key", key.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CREDENTIAL_GET_FAILED").
			With("operation", "get credential").
			With("key", key.String()).
			Wrap(err)
	}
	return cred, nil
}

// Find is Get returning (nil, nil) when no credential matches.
func (r *CredentialRepository) Find(ctx context.Context, key auth.CredentialKey) (*auth.Credential, error) {
	cred, err := r.Get(ctx, key)
	if errors.Is(err, auth.ErrNotFound) {
		return nil, nil
	}
	return cred, err
}

// Update replaces the password hash and active flag.
func (r *CredentialRepository) Update(ctx context.Context, key auth.CredentialKey, update auth.CredentialUpdate) (*auth.Credential, error) {
	query := updateCredentialByID
	if key.IsEmail() {
		query = updateCredentialByEmail
	}

	row := r.pool.QueryRow(ctx, query, credentialArg(key), update.PasswordHash, update.Active)
	cred, err := scanCredential(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CREDENTIAL_NOT_FOUND").
			With("key", key.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CREDENTIAL_UPDATE_FAILED").
			With("operation", "update credential").
			With("key", key.String()).
			Wrap(err)
	}
	return cred, nil
}

// UpdatePasswordHash replaces the hash of an active credential. The active
// flag is not written, so a concurrent Deactivate is never undone.
func (r *CredentialRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) (*auth.Credential, error) {
	cred, err := scanCredential(r.pool.QueryRow(ctx, updatePasswordHash, id.String(), passwordHash))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CREDENTIAL_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CREDENTIAL_UPDATE_FAILED").
			With("operation", "update password hash").
			With("id", id.String()).
			Wrap(err)
	}
	return cred, nil
}

// Deactivate soft-deletes an active credential. An unknown or already
// inactive credential returns auth.ErrNotFound.
func (r *CredentialRepository) Deactivate(ctx context.Context, key auth.CredentialKey) (*auth.Credential, error) {
	query := deactivateCredentialByID
	if key.IsEmail() {
		query = deactivateCredentialByEmail
	}

	cred, err := scanCredential(r.pool.QueryRow(ctx, query, credentialArg(key)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CREDENTIAL_NOT_FOUND").
			With("key", key.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CREDENTIAL_DEACTIVATE_FAILED").
			With("operation", "deactivate credential").
			With("key", key.String()).
			Wrap(err)
	}
	return cred, nil
}

func credentialArg(key auth.CredentialKey) string {
	if key.IsEmail() {
		return key.Email
	}
	return key.ID.String()
}

// scanCredential scans a single row into a Credential.
// pgx.ErrNoRows is returned unwrapped for callers to handle.
func scanCredential(row pgx.Row) (*auth.Credential, error) {
	var (
		idStr string
		cred  auth.Credential
	)
	if err := row.Scan(&idStr, &cred.Email, &cred.PasswordHash, &cred.Active); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with operation context
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("CREDENTIAL_INVALID_ID").
			With("operation", "parse credential id").
			With("id", idStr).
			Wrap(err)
	}
	cred.ID = id
	return &cred, nil
}

// Compile-time interface check.
var _ auth.CredentialRepository = (*CredentialRepository)(nil)
