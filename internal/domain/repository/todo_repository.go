package repository

import (
	"context"
	"errors"

	"tasklist/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTodoNotFound is returned when no todo matches both the requested id and
// the owner. A todo belonging to another user is indistinguishable from a
// missing one at this boundary.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines the standard operations for todo persistence.
// Every lookup and mutation takes the owner id and pushes the owner predicate
// into the query itself, so unauthorized rows are filtered at the source.
type TodoRepository interface {
	// Create persists a new todo entity to the storage.
	Create(ctx context.Context, todo *entity.Todo) error

	// FindByIDAndOwner retrieves a single todo matching both id and owner.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error)

	// ListByOwner returns a page of the owner's todos ordered by creation
	// time descending, together with the owner's total todo count.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Todo, int64, error)

	// Update modifies an existing todo. The row is matched by id and owner.
	Update(ctx context.Context, todo *entity.Todo) error

	// Delete removes the todo matching both id and owner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
