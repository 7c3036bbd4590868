// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package web serves the cookie-session HTTP API on top of an auth.API.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/observability"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Error codes in JSON error bodies.
const (
	codeInvalidInput       = "invalid_input"
	codeInvalidCredentials = "invalid_credentials"
	codeUnauthorized       = "unauthorized"
	codeInternal           = "internal"
)

// Config configures the HTTP API.
type Config struct {
	Cookies CookieOptions
	// SessionTTL is the lifetime of cookie sessions. Zero uses
	// auth.DefaultWebSessionTTL.
	SessionTTL time.Duration
	// RequestTimeout bounds each request. Zero means 30s.
	RequestTimeout time.Duration
	Logger         *slog.Logger
	Metrics        *observability.Metrics
}

// handler implements the HTTP endpoints.
type handler struct {
	api     auth.API
	cookies CookieOptions
	ttl     time.Duration
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID string `json:"id"`
}

type signInResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionResponse struct {
	SessionID    string    `json:"session_id"`
	CredentialID string    `json:"credential_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewRouter wires the HTTP API with its middleware stack.
func NewRouter(api auth.API, cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = auth.DefaultWebSessionTTL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	h := &handler{api: api, cookies: cfg.Cookies.normalize(), ttl: cfg.SessionTTL}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(cfg.Logger, cfg.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))

	r.Post("/accounts", h.handleCreateAccount)
	r.Post("/sessions", h.handleSignIn)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(api, h.cookies))
		r.Get("/session", h.handleGetSession)
		r.Delete("/session", h.handleSignOut)
	})

	return r
}

func (h *handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.api.CreateAccount(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountResponse{ID: id})
}

func (h *handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.api.SignInFor(r.Context(), req.Email, req.Password, h.ttl)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, h.cookies, session.ID.String(), session.ExpiresAt)
	writeJSON(w, http.StatusCreated, signInResponse{ExpiresAt: session.ExpiresAt})
}

func (h *handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, codeUnauthorized, "session required")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID:    session.ID.String(),
		CredentialID: session.CredentialID.String(),
		ExpiresAt:    session.ExpiresAt,
	})
}

func (h *handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, codeUnauthorized, "session required")
		return
	}

	if err := h.api.SignOut(r.Context(), session.ID.String()); err != nil && auth.KindOf(err) == auth.KindInternal {
		writeError(w, err)
		return
	}

	clearSessionCookie(w, h.cookies)
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON reads a JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, http.StatusRequestEntityTooLarge, codeInvalidInput, "request body too large")
			return false
		}
		writeProblem(w, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return false
	}
	return true
}

// writeError maps an auth error to a status and a caller-safe body.
func writeError(w http.ResponseWriter, err error) {
	switch auth.KindOf(err) {
	case auth.KindInvalidInput:
		writeProblem(w, http.StatusBadRequest, codeInvalidInput, auth.Message(err))
	case auth.KindInvalidCredentials:
		writeProblem(w, http.StatusUnauthorized, codeInvalidCredentials, auth.Message(err))
	default:
		writeProblem(w, http.StatusInternalServerError, codeInternal, auth.Message(err))
	}
}

func writeProblem(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
