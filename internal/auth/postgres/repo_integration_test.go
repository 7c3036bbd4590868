// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/auth/postgres"
)

// createTestCredential inserts a credential with a unique email.
func createTestCredential(ctx context.Context, t *testing.T) *auth.Credential {
	t.Helper()
	repo := postgres.NewCredentialRepository(testPool)
	cred, err := repo.Create(ctx, uuid.NewString()+"@example.com", "testhash")
	require.NoError(t, err)
	return cred
}

func TestCredentialRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewCredentialRepository(testPool)

	t.Run("create then read by both keys", func(t *testing.T) {
		email := uuid.NewString() + "@example.com"
		cred, err := repo.Create(ctx, email, "hash-1")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, cred.ID)
		assert.True(t, cred.Active)

		byEmail, err := repo.Get(ctx, auth.CredentialByEmail(email))
		require.NoError(t, err)
		byID, err := repo.Get(ctx, auth.CredentialByID(cred.ID))
		require.NoError(t, err)
		assert.Equal(t, cred, byEmail)
		assert.Equal(t, cred, byID)
	})

	t.Run("duplicate email even when inactive", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		_, err := repo.Deactivate(ctx, auth.CredentialByID(cred.ID))
		require.NoError(t, err)

		_, err = repo.Create(ctx, cred.Email, "other")
		require.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})

	t.Run("concurrent creates yield one row", func(t *testing.T) {
		email := uuid.NewString() + "@example.com"
		var wg sync.WaitGroup
		results := make(chan error, 5)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Create(ctx, email, "hash")
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("find absent", func(t *testing.T) {
		cred, err := repo.Find(ctx, auth.CredentialByEmail("absent-"+uuid.NewString()+"@example.com"))
		require.NoError(t, err)
		assert.Nil(t, cred)
	})

	t.Run("update hash", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		updated, err := repo.Update(ctx, auth.CredentialByID(cred.ID),
			auth.CredentialUpdate{PasswordHash: "hash-2", Active: true})
		require.NoError(t, err)
		assert.Equal(t, "hash-2", updated.PasswordHash)
	})

	t.Run("password hash update keeps a closed credential closed", func(t *testing.T) {
		cred := createTestCredential(ctx, t)

		updated, err := repo.UpdatePasswordHash(ctx, cred.ID, "hash-2")
		require.NoError(t, err)
		assert.Equal(t, "hash-2", updated.PasswordHash)
		assert.True(t, updated.Active)

		_, err = repo.Deactivate(ctx, auth.CredentialByID(cred.ID))
		require.NoError(t, err)

		_, err = repo.UpdatePasswordHash(ctx, cred.ID, "hash-3")
		require.ErrorIs(t, err, auth.ErrNotFound)

		stored, err := repo.Get(ctx, auth.CredentialByID(cred.ID))
		require.NoError(t, err)
		assert.False(t, stored.Active)
		assert.Equal(t, "hash-2", stored.PasswordHash)
	})

	t.Run("deactivate twice", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		deactivated, err := repo.Deactivate(ctx, auth.CredentialByEmail(cred.Email))
		require.NoError(t, err)
		assert.False(t, deactivated.Active)

		_, err = repo.Deactivate(ctx, auth.CredentialByEmail(cred.Email))
		require.ErrorIs(t, err, auth.ErrNotFound)

		stored, err := repo.Get(ctx, auth.CredentialByID(cred.ID))
		require.NoError(t, err)
		assert.False(t, stored.Active, "soft delete keeps the record")
	})
}

func TestSessionRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewSessionRepository(testPool)

	t.Run("create assigns id and created_at", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)

		session, err := repo.Create(ctx, cred.ID, expiresAt)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, session.ID)
		assert.True(t, session.Active)
		assert.Equal(t, cred.ID, session.CredentialID)
		assert.True(t, session.ExpiresAt.Equal(expiresAt))
		assert.True(t, session.ExpiresAt.After(session.CreatedAt))

		got, err := repo.Get(ctx, auth.SessionByID(session.ID))
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
	})

	t.Run("expiry behind the database clock is stored", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		expiresAt := time.Now().Add(-time.Second).UTC().Truncate(time.Microsecond)

		session, err := repo.Create(ctx, cred.ID, expiresAt)
		require.NoError(t, err)
		assert.True(t, session.ExpiresAt.Equal(expiresAt))
		assert.True(t, session.IsExpiredAt(session.CreatedAt))
	})

	t.Run("unknown credential is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, uuid.New(), time.Now().Add(time.Hour))
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("by credential returns the most recent", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		_, err := repo.Create(ctx, cred.ID, time.Now().Add(time.Hour))
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		latest, err := repo.Create(ctx, cred.ID, time.Now().Add(time.Hour))
		require.NoError(t, err)

		got, err := repo.Get(ctx, auth.SessionByCredential(cred.ID))
		require.NoError(t, err)
		assert.Equal(t, latest.ID, got.ID)
	})

	t.Run("deactivate by id is repeatable", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		session, err := repo.Create(ctx, cred.ID, time.Now().Add(time.Hour))
		require.NoError(t, err)

		for range 2 {
			got, err := repo.Deactivate(ctx, auth.SessionByID(session.ID))
			require.NoError(t, err)
			assert.False(t, got.Active)
		}
	})

	t.Run("deactivate by credential", func(t *testing.T) {
		cred := createTestCredential(ctx, t)
		first, err := repo.Create(ctx, cred.ID, time.Now().Add(time.Hour))
		require.NoError(t, err)
		second, err := repo.Create(ctx, cred.ID, time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = repo.Deactivate(ctx, auth.SessionByCredential(cred.ID))
		require.NoError(t, err)

		for _, id := range []uuid.UUID{first.ID, second.ID} {
			got, err := repo.Get(ctx, auth.SessionByID(id))
			require.NoError(t, err)
			assert.False(t, got.Active)
		}

		_, err = repo.Deactivate(ctx, auth.SessionByCredential(cred.ID))
		require.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		session, err := repo.Find(ctx, auth.SessionByID(uuid.New()))
		require.NoError(t, err)
		assert.Nil(t, session)

		_, err = repo.Deactivate(ctx, auth.SessionByID(uuid.New()))
		require.ErrorIs(t, err, auth.ErrNotFound)
	})
}
