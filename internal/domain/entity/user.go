// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// Email is stored lower-cased so uniqueness and lookups are case-insensitive.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's login identifier, unique across the system.
	Name         string    // The user's display name.
	PasswordHash []byte    // Argon2id digest of the user's password.
	PasswordSalt []byte    // Random salt the digest was derived under. Always set together with PasswordHash.
	CreatedAt    time.Time // Timestamp of when this account was created.
}

// Summary returns the projection of a user that is safe to expose
// outside the service. Credential material is deliberately excluded.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// UserSummary is the credential-free view of a User.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
