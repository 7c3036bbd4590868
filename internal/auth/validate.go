// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"regexp"

	"github.com/google/uuid"
)

// emailRegex matches local-part@domain.tld where the last label is at least
// two letters. Purely syntactic; no DNS lookups.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s is a syntactically valid email address.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ParseSessionID parses a session id in canonical UUID text form
// (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx). Any other form is rejected with an
// InvalidInput error.
func ParseSessionID(s string) (uuid.UUID, error) {
	return parseCanonicalID(s, MsgInvalidSessionID)
}

// ParseCredentialID is ParseSessionID for credential ids.
func ParseCredentialID(s string) (uuid.UUID, error) {
	return parseCanonicalID(s, MsgInvalidCredentialID)
}

// parseCanonicalID accepts only the 36-character hyphenated form; uuid.Parse
// alone also takes urn:, braced and hyphenless forms.
func parseCanonicalID(s, msg string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, NewInvalidInputError(msg)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, NewInvalidInputError(msg)
	}
	return id, nil
}

// ValidSessionID reports whether s is a well-formed session id.
func ValidSessionID(s string) bool {
	_, err := ParseSessionID(s)
	return err == nil
}
