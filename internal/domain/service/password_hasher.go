// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying KDF (e.g., argon2id), keeping the domain pure.
// Implementations return the digest and its salt separately; the two are
// always stored together on the user record.
type PasswordHasher interface {
	// Hash derives a digest of the plaintext password under a freshly
	// generated random salt and returns both.
	Hash(password string) (hash, salt []byte, err error)

	// Verify recomputes the digest from password and salt and compares it
	// to hash in constant time. Malformed stored values verify as false,
	// never as an error.
	Verify(password string, hash, salt []byte) bool

	// ValidatePasswordStrength reports whether the password meets the
	// configured policy. Checked before Hash at the orchestration boundary.
	ValidatePasswordStrength(password string) error
}
