// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"tasklist/config"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/service"
	"tasklist/internal/errors"
)

// Argon2id parameters. 64 MiB / 1 pass / 4 lanes follows the RFC 9106
// second recommended option for interactive logins.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

const (
	defaultPasswordMinLength = 8
	defaultPasswordMaxLength = 64
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface
// using argon2id with an explicit salt, so digest and salt can be persisted
// as separate columns.
type argon2Hasher struct {
	minLength int
	maxLength int
}

// NewArgon2Hasher is the constructor for argon2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	minLength, maxLength := defaultPasswordMinLength, defaultPasswordMaxLength
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.PasswordMinLength > 0 {
			minLength = cfg.Auth.PasswordMinLength
		}
		if cfg.Auth.PasswordMaxLength > 0 {
			maxLength = cfg.Auth.PasswordMaxLength
		}
	}

	return &argon2Hasher{minLength: minLength, maxLength: maxLength}
}

// Hash derives an argon2id digest of the password under a fresh random salt.
func (h *argon2Hasher) Hash(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate password salt")
	}

	hash = argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hash, salt, nil
}

// Verify recomputes the digest and compares it in constant time. Stored
// values of the wrong shape simply fail verification.
func (h *argon2Hasher) Verify(password string, hash, salt []byte) bool {
	if len(hash) != argonKeyLen || len(salt) != saltLen {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return subtle.ConstantTimeCompare(computed, hash) == 1
}

// ValidatePasswordStrength enforces the configured length bounds.
func (h *argon2Hasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return domainerrors.ErrValidationFailed.WrapMessage("password is too short")
	}
	if len(password) > h.maxLength {
		return domainerrors.ErrValidationFailed.WrapMessage("password is too long")
	}

	return nil
}
