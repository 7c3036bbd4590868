// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/pkg/errutil"
)

var credentialCols = []string{"id", "email", "password_hash", "active"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestCredentialRepository_Create(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		wantCode  string
	}{
		{
			name: "returns stored credential",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO credentials (email, password_hash)")).
					WithArgs("a@b.com", "hash").
					WillReturnRows(pgxmock.NewRows(credentialCols).AddRow(id.String(), "a@b.com", "hash", true))
			},
		},
		{
			name: "unique violation is duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO credentials")).
					WithArgs("a@b.com", "hash").
					WillReturnError(&pgconn.PgError{
						Code:           pgerrcode.UniqueViolation,
						ConstraintName: "credentials_email_key",
					})
			},
			wantErr:  auth.ErrDuplicateEmail,
			wantCode: "CREDENTIAL_DUPLICATE_EMAIL",
		},
		{
			name: "other database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO credentials")).
					WithArgs("a@b.com", "hash").
					WillReturnError(errors.New("connection refused"))
			},
			wantCode: "CREDENTIAL_CREATE_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setupMock(mock)

			cred, err := NewCredentialRepository(mock).Create(ctx, "a@b.com", "hash")
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Nil(t, cred)
				errutil.AssertErrorCode(t, err, tt.wantCode)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &auth.Credential{ID: id, Email: "a@b.com", PasswordHash: "hash", Active: true}, cred)
		})
	}
}

func TestCredentialRepository_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("by email", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE email = $1")).
			WithArgs("a@b.com").
			WillReturnRows(pgxmock.NewRows(credentialCols).AddRow(id.String(), "a@b.com", "hash", false))

		cred, err := NewCredentialRepository(mock).Get(ctx, auth.CredentialByEmail("a@b.com"))
		require.NoError(t, err)
		assert.Equal(t, id, cred.ID)
		assert.False(t, cred.Active)
	})

	t.Run("by id", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows(credentialCols).AddRow(id.String(), "a@b.com", "hash", true))

		cred, err := NewCredentialRepository(mock).Get(ctx, auth.CredentialByID(id))
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", cred.Email)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnError(pgx.ErrNoRows)

		_, err := NewCredentialRepository(mock).Get(ctx, auth.CredentialByID(id))
		require.ErrorIs(t, err, auth.ErrNotFound)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_NOT_FOUND")
	})

	t.Run("corrupt id", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE email = $1")).
			WithArgs("a@b.com").
			WillReturnRows(pgxmock.NewRows(credentialCols).AddRow("not-a-uuid", "a@b.com", "hash", true))

		_, err := NewCredentialRepository(mock).Get(ctx, auth.CredentialByEmail("a@b.com"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestCredentialRepository_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("absent is nil without error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE email = $1")).
			WithArgs("nobody@b.com").
			WillReturnError(pgx.ErrNoRows)

		cred, err := NewCredentialRepository(mock).Find(ctx, auth.CredentialByEmail("nobody@b.com"))
		require.NoError(t, err)
		assert.Nil(t, cred)
	})

	t.Run("database error is returned", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE email = $1")).
			WithArgs("a@b.com").
			WillReturnError(errors.New("timeout"))

		cred, err := NewCredentialRepository(mock).Find(ctx, auth.CredentialByEmail("a@b.com"))
		require.Error(t, err)
		assert.Nil(t, cred)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_GET_FAILED")
	})
}

func TestCredentialRepository_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("writes hash and active flag", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE credentials SET password_hash = $2, active = $3")).
			WithArgs(id.String(), "new-hash", true).
			WillReturnRows(pgxmock.NewRows(credentialCols).AddRow(id.String(), "a@b.com", "new-hash", true))

		cred, err := NewCredentialRepository(mock).Update(ctx, auth.CredentialByID(id),
			auth.CredentialUpdate{PasswordHash: "new-hash", Active: true})
		require.NoError(t, err)
		assert.Equal(t, "new-hash", cred.PasswordHash)
	})

	t.Run("unknown credential", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 RETURNING")).
			WithArgs("a@b.com", "h", false).
			WillReturnError(pgx.ErrNoRows)

		_, err := NewCredentialRepository(mock).Update(ctx, auth.CredentialByEmail("a@b.com"),
			auth.CredentialUpdate{PasswordHash: "h"})
		require.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestCredentialRepository_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("writes only the hash of an active row", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`UPDATE credentials SET password_hash = \$2\s+WHERE id = \$1 AND active RETURNING`).
			WithArgs(id.String(), "stronger").
			WillReturnRows(pgxmock.NewRows(credentialCols).AddRow(id.String(), "a@b.com", "stronger", true))

		cred, err := NewCredentialRepository(mock).UpdatePasswordHash(ctx, id, "stronger")
		require.NoError(t, err)
		assert.Equal(t, "stronger", cred.PasswordHash)
		assert.True(t, cred.Active)
	})

	t.Run("inactive credential is not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND active RETURNING")).
			WithArgs(id.String(), "stronger").
			WillReturnError(pgx.ErrNoRows)

		_, err := NewCredentialRepository(mock).UpdatePasswordHash(ctx, id, "stronger")
		require.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE credentials SET password_hash = $2")).
			WithArgs(id.String(), "stronger").
			WillReturnError(errors.New("read only transaction"))

		_, err := NewCredentialRepository(mock).UpdatePasswordHash(ctx, id, "stronger")
		errutil.AssertErrorCode(t, err, "CREDENTIAL_UPDATE_FAILED")
		errutil.AssertErrorContext(t, err, "operation", "update password hash")
	})
}

func TestCredentialRepository_Deactivate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("only active rows", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND active RETURNING")).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows(credentialCols).AddRow(id.String(), "a@b.com", "hash", false))

		cred, err := NewCredentialRepository(mock).Deactivate(ctx, auth.CredentialByID(id))
		require.NoError(t, err)
		assert.False(t, cred.Active)
	})

	t.Run("already inactive is not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND active")).
			WithArgs(id.String()).
			WillReturnError(pgx.ErrNoRows)

		_, err := NewCredentialRepository(mock).Deactivate(ctx, auth.CredentialByID(id))
		require.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 AND active")).
			WithArgs("a@b.com").
			WillReturnError(errors.New("read only transaction"))

		_, err := NewCredentialRepository(mock).Deactivate(ctx, auth.CredentialByEmail("a@b.com"))
		errutil.AssertErrorCode(t, err, "CREDENTIAL_DEACTIVATE_FAILED")
	})
}
