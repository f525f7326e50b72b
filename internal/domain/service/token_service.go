package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failures are distinguished internally so tests and logs can
// tell them apart; the identity resolver collapses all of them into a single
// unauthenticated outcome before anything reaches a client.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenIssuerMismatch   = errors.New("token issuer mismatch")
	ErrTokenAudienceMismatch = errors.New("token audience mismatch")
	ErrTokenInvalid          = errors.New("token is invalid")
)

// Claims defines the custom claims carried by issued tokens. UserID mirrors
// the registered "sub" claim and is the only field the identity resolver
// depends on.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email,omitempty"`
	Name   string    `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-bounded token for the given identity.
	Issue(userID uuid.UUID, email, name string) (token string, expiresAt time.Time, err error)

	// Verify checks the signature, expiry, issuer and audience of a token
	// and returns its claims. Failures map to the sentinel errors above.
	Verify(tokenString string) (*Claims, error)
}
