// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package web

import (
	"net/http"
	"time"
)

// DefaultCookieName is used when CookieOptions.Name is empty.
const DefaultCookieName = "session_id"

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// normalize fills defaults. Session cookies are always HttpOnly.
func (o CookieOptions) normalize() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// setSessionCookie issues the session cookie to the client.
func setSessionCookie(w http.ResponseWriter, opts CookieOptions, sessionID string, expiresAt time.Time) {
	opts = opts.normalize()
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    sessionID,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// clearSessionCookie removes the session cookie from the client.
func clearSessionCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// sessionCookie returns the session id presented by the client, if any.
func sessionCookie(r *http.Request, opts CookieOptions) (string, bool) {
	c, err := r.Cookie(opts.normalize().Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
