package usecase

import (
	"context"

	"tasklist/internal/domain/entity"

	"github.com/google/uuid"
)

// Listing defaults mirror the public API contract: first page, ten items,
// never more than a hundred per request.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// CreateTodoInput defines the data required to create a todo.
type CreateTodoInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
}

// UpdateTodoInput defines the data for a full todo update.
type UpdateTodoInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Completed   bool   `json:"completed"`
}

// ListTodosInput carries pagination parameters. Values out of range are
// normalized, not rejected.
type ListTodosInput struct {
	Page  int
	Limit int
}

// ListTodosOutput is a single page of the caller's todos, newest first.
type ListTodosOutput struct {
	Data  []*entity.Todo `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}

// TodoUsecase defines the interface for todo operations. Every operation is
// scoped to the calling user; a todo owned by someone else behaves exactly
// like a missing one.
type TodoUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input *CreateTodoInput) (*entity.Todo, error)
	GetByID(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error)
	List(ctx context.Context, userID uuid.UUID, input *ListTodosInput) (*ListTodosOutput, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, input *UpdateTodoInput) (*entity.Todo, error)
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}
