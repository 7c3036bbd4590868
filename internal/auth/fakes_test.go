// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

// memCredentials is an in-memory CredentialRepository with the same
// uniqueness and soft-delete behaviour as the postgres store.
type memCredentials struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*auth.Credential
	findErr error
	// afterFind runs after every successful Find, outside the lock.
	afterFind func(*auth.Credential)
}

func newMemCredentials() *memCredentials {
	return &memCredentials{byID: make(map[uuid.UUID]*auth.Credential)}
}

func (m *memCredentials) Create(_ context.Context, email, passwordHash string) (*auth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Email == email {
			return nil, oops.Code("CREDENTIAL_DUPLICATE_EMAIL").Wrap(auth.ErrDuplicateEmail)
		}
	}
	c := &auth.Credential{ID: uuid.New(), Email: email, PasswordHash: passwordHash, Active: true}
	m.byID[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m *memCredentials) lookup(key auth.CredentialKey) *auth.Credential {
	if !key.IsEmail() {
		return m.byID[key.ID]
	}
	for _, c := range m.byID {
		if c.Email == key.Email {
			return c
		}
	}
	return nil
}

func (m *memCredentials) Get(ctx context.Context, key auth.CredentialKey) (*auth.Credential, error) {
	c, err := m.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, oops.Wrap(auth.ErrNotFound)
	}
	return c, nil
}

func (m *memCredentials) Find(_ context.Context, key auth.CredentialKey) (*auth.Credential, error) {
	m.mu.Lock()
	if m.findErr != nil {
		m.mu.Unlock()
		return nil, m.findErr
	}
	c := m.lookup(key)
	if c == nil {
		m.mu.Unlock()
		return nil, nil
	}
	cp := *c
	hook := m.afterFind
	m.mu.Unlock()

	if hook != nil {
		hook(&cp)
	}
	return &cp, nil
}

func (m *memCredentials) Update(_ context.Context, key auth.CredentialKey, update auth.CredentialUpdate) (*auth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.lookup(key)
	if c == nil {
		return nil, oops.Wrap(auth.ErrNotFound)
	}
	c.PasswordHash = update.PasswordHash
	c.Active = update.Active
	cp := *c
	return &cp, nil
}

func (m *memCredentials) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) (*auth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.byID[id]
	if c == nil || !c.Active {
		return nil, oops.Wrap(auth.ErrNotFound)
	}
	c.PasswordHash = passwordHash
	cp := *c
	return &cp, nil
}

func (m *memCredentials) Deactivate(_ context.Context, key auth.CredentialKey) (*auth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.lookup(key)
	if c == nil || !c.Active {
		return nil, oops.Wrap(auth.ErrNotFound)
	}
	c.Active = false
	cp := *c
	return &cp, nil
}

// memSessions is an in-memory SessionRepository.
type memSessions struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*auth.Session
	now       func() time.Time
	createErr error
}

func newMemSessions(now func() time.Time) *memSessions {
	return &memSessions{byID: make(map[uuid.UUID]*auth.Session), now: now}
}

func (m *memSessions) Create(_ context.Context, credentialID uuid.UUID, expiresAt time.Time) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	s := &auth.Session{
		ID:           uuid.New(),
		CreatedAt:    m.now(),
		ExpiresAt:    expiresAt,
		CredentialID: credentialID,
		Active:       true,
	}
	m.byID[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *memSessions) Get(ctx context.Context, key auth.SessionKey) (*auth.Session, error) {
	s, err := m.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, oops.Wrap(auth.ErrNotFound)
	}
	return s, nil
}

func (m *memSessions) Find(_ context.Context, key auth.SessionKey) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !key.IsCredential() {
		s := m.byID[key.ID]
		if s == nil {
			return nil, nil
		}
		cp := *s
		return &cp, nil
	}
	var latest *auth.Session
	for _, s := range m.byID {
		if s.CredentialID == key.CredentialID && (latest == nil || s.CreatedAt.After(latest.CreatedAt)) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (m *memSessions) Deactivate(_ context.Context, key auth.SessionKey) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last *auth.Session
	for _, s := range m.byID {
		match := s.ID == key.ID
		if key.IsCredential() {
			match = s.CredentialID == key.CredentialID && s.Active
		}
		if !match {
			continue
		}
		s.Active = false
		if last == nil || s.CreatedAt.After(last.CreatedAt) {
			last = s
		}
	}
	if last == nil {
		return nil, oops.Wrap(auth.ErrNotFound)
	}
	cp := *last
	return &cp, nil
}
