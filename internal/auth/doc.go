// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package auth provides the session-based authentication core.
//
// # Domain Types
//
//   - Credential - an account: email, argon2 password hash, active flag
//   - Session - proof of sign-in with an expiry, owned by one Credential
//
// Both are soft-deleted: deactivation flips Active to false and keeps the
// record. Ids and creation timestamps are assigned by the store.
//
// # Services
//
// Service coordinates the repositories and the PasswordHasher:
//   - CreateAccount - validate email, reject registered emails, hash, insert
//   - SignIn / SignInFor - verify the password and issue a fresh session
//   - Authenticate - check a session id is active and unexpired
//   - SignOut, CloseAccount - soft-delete sessions and credentials
//
// Every Service error has one of three codes (see KindOf):
// CodeInvalidInput, CodeInvalidCredentials or CodeInternal. Store and hasher
// failures are logged and surfaced only as CodeInternal.
package auth
