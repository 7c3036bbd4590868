// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by credential stores when the email is
// already taken by another record, active or not.
var ErrDuplicateEmail = errors.New("email already registered")

// Error codes surfaced to callers of Service.
const (
	CodeInvalidInput       = "AUTH_INVALID_INPUT"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeInternal           = "AUTH_INTERNAL"
)

// Messages carried by InvalidInput errors.
const (
	MsgInvalidEmail        = "invalid email"
	MsgInvalidSessionID    = "invalid session id format"
	MsgInvalidCredentialID = "invalid credential id format"
	MsgSessionTTLTooLong   = "session ttl exceeds maximum"
)

// Kind classifies a Service error for transport adapters.
type Kind int

// Error kinds.
const (
	KindInternal Kind = iota
	KindInvalidInput
	KindInvalidCredentials
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "internal"
	}
}

// KindOf reports the kind of err. Errors without a recognised code are
// internal.
func KindOf(err error) Kind {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return KindInternal
	}
	switch oopsErr.Code() {
	case CodeInvalidInput:
		return KindInvalidInput
	case CodeInvalidCredentials:
		return KindInvalidCredentials
	default:
		return KindInternal
	}
}

// Message returns the caller-safe message for err: the validation message for
// InvalidInput and a fixed string for the other kinds.
func Message(err error) string {
	switch KindOf(err) {
	case KindInvalidInput:
		if oopsErr, ok := oops.AsOops(err); ok {
			return oopsErr.Error()
		}
		return err.Error()
	case KindInvalidCredentials:
		return "invalid credentials"
	default:
		return "internal server error"
	}
}

// NewInvalidInputError builds an InvalidInput error with the given message.
func NewInvalidInputError(msg string) error {
	return oops.Code(CodeInvalidInput).Errorf("%s", msg)
}

// NewInvalidCredentialsError builds an InvalidCredentials error.
func NewInvalidCredentialsError() error {
	return oops.Code(CodeInvalidCredentials).Errorf("invalid credentials")
}

// NewInternalError builds an opaque internal error. The cause is never attached.
func NewInternalError() error {
	return oops.Code(CodeInternal).Errorf("internal server error")
}
