package entity

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single task owned by exactly one user. UserID is set at creation
// and never changes; every read and mutation is scoped to that owner.
type Todo struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
