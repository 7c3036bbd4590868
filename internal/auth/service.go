// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/authcore/pkg/errutil"
)

// Service provides account creation, sign-in and session authentication.
// It holds no mutable state of its own and is safe for concurrent use as
// long as its repositories are.
type Service struct {
	credentials CredentialRepository
	sessions    SessionRepository
	hasher      PasswordHasher
	logger      *slog.Logger
	metrics     *Metrics
	sessionTTL  time.Duration
	maxTTL      time.Duration
	now         func() time.Time
	tracer      trace.Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for internal faults.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables operation metrics.
func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracerProvider sets the provider spans are created from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) ServiceOption {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithSessionTTL sets the lifetime of sessions issued by SignIn.
// Non-positive values are ignored.
func WithSessionTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithMaxSessionTTL caps the lifetime a SignInFor caller may request.
// It defaults to the session TTL.
func WithMaxSessionTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.maxTTL = ttl
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service. All three dependencies are required.
func NewService(credentials CredentialRepository, sessions SessionRepository, hasher PasswordHasher, opts ...ServiceOption) (*Service, error) {
	if credentials == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("credentials repository is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("sessions repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("password hasher is required")
	}

	s := &Service{
		credentials: credentials,
		sessions:    sessions,
		hasher:      hasher,
		logger:      slog.Default(),
		sessionTTL:  DefaultSessionTTL,
		now:         time.Now,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("logger cannot be nil")
	}
	if s.maxTTL == 0 {
		s.maxTTL = s.sessionTTL
	}
	if s.maxTTL < s.sessionTTL {
		return nil, oops.Code("AUTH_INVALID_SESSION_TTL").
			With("session_ttl", s.sessionTTL).
			With("max_ttl", s.maxTTL).
			Errorf("max session ttl is shorter than the default session ttl")
	}
	return s, nil
}

// SessionTTL returns the default session lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// MaxSessionTTL returns the longest lifetime SignInFor accepts.
func (s *Service) MaxSessionTTL() time.Duration {
	return s.maxTTL
}

// dummyPasswordHash is verified against when an email is unknown so that
// response time does not reveal whether the account exists.
// It is not a credential and matches no password.
//
//nolint:gosec // G101: intentionally fake hash for timing equalisation
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// CreateAccount registers a new credential and returns its id.
//
// An email that is already registered, active or not, yields
// InvalidCredentials rather than a distinct "exists" error.
func (s *Service) CreateAccount(ctx context.Context, email, password string) (string, error) {
	ctx, finish := s.startOperation(ctx, OpCreateAccount)
	id, err := s.createAccount(ctx, email, password)
	finish(err)
	return id, err
}

func (s *Service) createAccount(ctx context.Context, email, password string) (string, error) {
	if !ValidEmail(email) {
		return "", NewInvalidInputError(MsgInvalidEmail)
	}

	existing, err := s.credentials.Find(ctx, CredentialByEmail(email))
	if err != nil {
		return "", s.internal(ctx, OpCreateAccount, "find credential by email", err)
	}
	if existing != nil {
		return "", NewInvalidCredentialsError()
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return "", s.internal(ctx, OpCreateAccount, "hash password", err)
	}

	cred, err := s.credentials.Create(ctx, email, hash)
	if err != nil {
		// A concurrent registration can slip between Find and Create; the
		// store's unique constraint catches it.
		if errors.Is(err, ErrDuplicateEmail) {
			return "", NewInvalidCredentialsError()
		}
		return "", s.internal(ctx, OpCreateAccount, "insert credential", err)
	}

	s.logger.InfoContext(ctx, "account created", "credential_id", cred.ID.String())
	return cred.ID.String(), nil
}

// SignIn verifies the credentials and issues a session that lives for the
// service's default TTL.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return s.SignInFor(ctx, email, password, 0)
}

// SignInFor is SignIn with an explicit session lifetime.
// A non-positive ttl uses the default; one above MaxSessionTTL is
// InvalidInput.
func (s *Service) SignInFor(ctx context.Context, email, password string, ttl time.Duration) (*Session, error) {
	ctx, finish := s.startOperation(ctx, OpSignIn)
	session, err := s.signIn(ctx, email, password, ttl)
	finish(err)
	return session, err
}

func (s *Service) signIn(ctx context.Context, email, password string, ttl time.Duration) (*Session, error) {
	if !ValidEmail(email) {
		return nil, NewInvalidInputError(MsgInvalidEmail)
	}
	if ttl > s.maxTTL {
		return nil, NewInvalidInputError(MsgSessionTTLTooLong)
	}

	cred, err := s.credentials.Find(ctx, CredentialByEmail(email))
	if err != nil {
		return nil, s.internal(ctx, OpSignIn, "find credential by email", err)
	}

	targetHash := dummyPasswordHash
	if cred != nil {
		targetHash = cred.PasswordHash
	}

	valid, err := s.verifyPassword(password, targetHash)
	if err != nil {
		if cred == nil {
			return nil, NewInvalidCredentialsError()
		}
		// A stored hash that does not parse is a fault, not a failed sign-in.
		return nil, s.internal(ctx, OpSignIn, "verify password", err,
			"credential_id", cred.ID.String())
	}

	if cred == nil || !valid || !cred.Active {
		return nil, NewInvalidCredentialsError()
	}

	if !s.upgradeHash(ctx, cred, password) {
		return nil, NewInvalidCredentialsError()
	}

	if ttl <= 0 {
		ttl = s.sessionTTL
	}
	session, err := s.sessions.Create(ctx, cred.ID, s.now().Add(ttl))
	if err != nil {
		return nil, s.internal(ctx, OpSignIn, "insert session", err,
			"credential_id", cred.ID.String())
	}

	s.logger.DebugContext(ctx, "session issued",
		"credential_id", cred.ID.String(),
		"session_id", session.ID.String(),
		"expires_at", session.ExpiresAt,
	)
	return session, nil
}

// upgradeHash re-hashes the password when the stored hash uses weaker
// parameters. Store and hasher failures are logged and do not affect
// sign-in. It returns false when the credential was closed after it was read.
func (s *Service) upgradeHash(ctx context.Context, cred *Credential, password string) bool {
	if !s.hasher.NeedsUpgrade(cred.PasswordHash) {
		return true
	}
	newHash, err := s.hashPassword(password)
	if err != nil {
		errutil.LogErrorContext(ctx, s.logger, "password hash upgrade failed", err,
			"credential_id", cred.ID.String())
		return true
	}
	updated, err := s.credentials.UpdatePasswordHash(ctx, cred.ID, newHash)
	if errors.Is(err, ErrNotFound) {
		s.logger.InfoContext(ctx, "credential closed during sign-in",
			"credential_id", cred.ID.String())
		return false
	}
	if err != nil {
		errutil.LogErrorContext(ctx, s.logger, "password hash upgrade failed", err,
			"credential_id", cred.ID.String())
		return true
	}
	cred.PasswordHash = updated.PasswordHash
	return true
}

// Authenticate checks that sessionID names an active, unexpired session and
// returns it. Expired sessions are left untouched in the store.
func (s *Service) Authenticate(ctx context.Context, sessionID string) (*Session, error) {
	ctx, finish := s.startOperation(ctx, OpAuthenticate)
	session, err := s.authenticate(ctx, sessionID)
	finish(err)
	return session, err
}

func (s *Service) authenticate(ctx context.Context, sessionID string) (*Session, error) {
	id, err := ParseSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Find(ctx, SessionByID(id))
	if err != nil {
		return nil, s.internal(ctx, OpAuthenticate, "find session by id", err,
			"session_id", sessionID)
	}
	if session == nil || !session.Active {
		return nil, NewInvalidCredentialsError()
	}
	if session.IsExpiredAt(s.now()) {
		return nil, NewInvalidCredentialsError()
	}
	return session, nil
}

// SignOut deactivates a session. Signing out twice is not an error.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	ctx, finish := s.startOperation(ctx, OpSignOut)
	err := s.signOut(ctx, sessionID)
	finish(err)
	return err
}

func (s *Service) signOut(ctx context.Context, sessionID string) error {
	id, err := ParseSessionID(sessionID)
	if err != nil {
		return err
	}

	if _, err := s.sessions.Deactivate(ctx, SessionByID(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewInvalidCredentialsError()
		}
		return s.internal(ctx, OpSignOut, "deactivate session", err,
			"session_id", sessionID)
	}
	return nil
}

// CloseAccount deactivates a credential and every session it owns.
// The records are kept.
func (s *Service) CloseAccount(ctx context.Context, credentialID string) error {
	ctx, finish := s.startOperation(ctx, OpCloseAccount)
	err := s.closeAccount(ctx, credentialID)
	finish(err)
	return err
}

func (s *Service) closeAccount(ctx context.Context, credentialID string) error {
	id, err := ParseCredentialID(credentialID)
	if err != nil {
		return err
	}

	if _, err := s.credentials.Deactivate(ctx, CredentialByID(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewInvalidCredentialsError()
		}
		return s.internal(ctx, OpCloseAccount, "deactivate credential", err,
			"credential_id", credentialID)
	}

	if _, err := s.sessions.Deactivate(ctx, SessionByCredential(id)); err != nil && !errors.Is(err, ErrNotFound) {
		return s.internal(ctx, OpCloseAccount, "deactivate sessions", err,
			"credential_id", credentialID)
	}

	s.logger.InfoContext(ctx, "account closed", "credential_id", credentialID)
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	defer s.metrics.observeHash(time.Now())
	return s.hasher.Hash(password)
}

func (s *Service) verifyPassword(password, hash string) (bool, error) {
	defer s.metrics.observeHash(time.Now())
	return s.hasher.Verify(password, hash)
}

// internal logs err with its context and returns an opaque internal error.
func (s *Service) internal(ctx context.Context, operation, step string, err error, attrs ...any) error {
	attrs = append([]any{"operation", operation, "step", step}, attrs...)
	errutil.LogErrorContext(ctx, s.logger, "auth operation failed", err, attrs...)
	return NewInternalError()
}
