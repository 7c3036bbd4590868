// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"time"
)

// API is the set of auth operations exposed to transport adapters.
// *Service implements it locally; the gRPC client implements it remotely.
type API interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignInFor(ctx context.Context, email, password string, ttl time.Duration) (*Session, error)
	Authenticate(ctx context.Context, sessionID string) (*Session, error)
	SignOut(ctx context.Context, sessionID string) error
}

var _ API = (*Service)(nil)
