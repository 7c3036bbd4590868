// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/logging"
	"github.com/holomush/authcore/internal/observability"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

type sessionKey struct{}

// SessionFromContext returns the session attached by RequireSession.
func SessionFromContext(ctx context.Context) (*auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*auth.Session)
	return s, ok
}

// RequestID stamps each request with a ulid, or the caller's X-Request-ID,
// and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = ulid.Make().String()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// AccessLog logs and counts every request after it completes.
func AccessLog(logger *slog.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			metrics.ObserveRequest("http", r.Method+" "+route, strconv.Itoa(status), elapsed)

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "http request",
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
			)
		})
	}
}

// RequireSession authenticates the session cookie and attaches the session
// to the request context. Missing, malformed, expired or signed-out sessions
// get 401 and the cookie is cleared.
func RequireSession(api auth.API, cookies CookieOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessionCookie(r, cookies)
			if !ok {
				writeProblem(w, http.StatusUnauthorized, codeUnauthorized, "session required")
				return
			}

			session, err := api.Authenticate(r.Context(), id)
			if err != nil {
				if auth.KindOf(err) == auth.KindInternal {
					writeError(w, err)
					return
				}
				clearSessionCookie(w, cookies)
				writeProblem(w, http.StatusUnauthorized, codeUnauthorized, "session required")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
