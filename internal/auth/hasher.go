// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// Argon2 algorithm identifiers as they appear in PHC strings.
const (
	algArgon2id = "argon2id"
	algArgon2i  = "argon2i"
)

// HasherParams are the argon2 cost parameters.
type HasherParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHasherParams returns the OWASP-recommended argon2id parameters.
func DefaultHasherParams() HasherParams {
	return HasherParams{
		Memory:      64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate checks that the parameters can produce a usable hash.
func (p HasherParams) Validate() error {
	switch {
	case p.Memory < 8*uint32(p.Parallelism):
		return oops.Code("AUTH_INVALID_HASHER_PARAMS").
			With("memory", p.Memory).
			Errorf("memory must be at least 8*parallelism KiB")
	case p.Iterations == 0:
		return oops.Code("AUTH_INVALID_HASHER_PARAMS").Errorf("iterations must be positive")
	case p.Parallelism == 0:
		return oops.Code("AUTH_INVALID_HASHER_PARAMS").Errorf("parallelism must be positive")
	case p.SaltLength < 8:
		return oops.Code("AUTH_INVALID_HASHER_PARAMS").
			With("salt_length", p.SaltLength).
			Errorf("salt length must be at least 8 bytes")
	case p.KeyLength < 16:
		return oops.Code("AUTH_INVALID_HASHER_PARAMS").
			With("key_length", p.KeyLength).
			Errorf("key length must be at least 16 bytes")
	}
	return nil
}

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a self-describing PHC hash of the password.
	Hash(password string) (string, error)

	// Verify checks if the password matches the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or error on invalid hash.
	Verify(password, hash string) (bool, error)

	// NeedsUpgrade returns true if the hash was produced with a different
	// algorithm or weaker parameters than the hasher's current ones.
	NeedsUpgrade(hash string) bool
}

// Argon2Hasher implements PasswordHasher using argon2id.
type Argon2Hasher struct {
	params HasherParams
}

// NewArgon2Hasher creates an Argon2Hasher with the given parameters.
func NewArgon2Hasher(params HasherParams) (*Argon2Hasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Argon2Hasher{params: params}, nil
}

// NewDefaultArgon2Hasher creates an Argon2Hasher with DefaultHasherParams.
func NewDefaultArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{params: DefaultHasherParams()}
}

// Params returns the hasher's parameters.
func (h *Argon2Hasher) Params() HasherParams {
	return h.params
}

// Hash produces an argon2id hash of the password with a fresh random salt.
// The empty password is hashed like any other.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("AUTH_SALT_FAILED").Wrap(err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algArgon2id,
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks if the password matches the hash.
func (h *Argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	decoded, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	var computed []byte
	if decoded.algorithm == algArgon2i {
		computed = argon2.Key([]byte(password), decoded.salt, decoded.params.Iterations, decoded.params.Memory, decoded.params.Parallelism, decoded.params.KeyLength)
	} else {
		computed = argon2.IDKey([]byte(password), decoded.salt, decoded.params.Iterations, decoded.params.Memory, decoded.params.Parallelism, decoded.params.KeyLength)
	}

	return subtle.ConstantTimeCompare(computed, decoded.key) == 1, nil
}

// NeedsUpgrade reports whether hash should be recomputed with the current
// parameters. Unparseable hashes always need an upgrade.
func (h *Argon2Hasher) NeedsUpgrade(hash string) bool {
	decoded, err := decodeHash(hash)
	if err != nil {
		return true
	}
	if decoded.algorithm != algArgon2id || decoded.version != argon2.Version {
		return true
	}
	p := decoded.params
	return p.Memory < h.params.Memory ||
		p.Iterations < h.params.Iterations ||
		p.Parallelism < h.params.Parallelism ||
		uint32(len(decoded.salt)) < h.params.SaltLength ||
		p.KeyLength < h.params.KeyLength
}

type decodedHash struct {
	algorithm string
	version   int
	params    HasherParams
	salt      []byte
	key       []byte
}

// decodeHash parses a PHC argon2 string.
func decodeHash(encodedHash string) (*decodedHash, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("invalid hash format")
	}

	d := &decodedHash{algorithm: parts[1]}
	if d.algorithm != algArgon2id && d.algorithm != algArgon2i {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("unsupported hash algorithm: %s", parts[1])
	}

	if _, err := fmt.Sscanf(parts[2], "v=%d", &d.version); err != nil {
		return nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}
	if d.version != argon2.Version {
		return nil, oops.Code("AUTH_INVALID_HASH").
			With("version", d.version).
			Errorf("unsupported argon2 version")
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}
	// threads must fit in uint8 to avoid silent truncation
	if threads == 0 || threads > 255 {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("invalid parallelism: %d", threads)
	}
	if iterations == 0 {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("invalid iterations: 0")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}

	keyLen := len(key)
	if keyLen == 0 || keyLen > 1<<30 {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("invalid hash key length: %d", keyLen)
	}

	d.params = HasherParams{
		Memory:      memory,
		Iterations:  iterations,
		Parallelism: uint8(threads),
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(keyLen),
	}
	d.salt = salt
	d.key = key
	return d, nil
}
