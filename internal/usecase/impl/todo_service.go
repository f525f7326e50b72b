package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// todoService implements the TodoUsecase interface. All operations are scoped
// to the calling user through owner-filtered store lookups plus the
// authorizeOwner guard.
type todoService struct {
	todoRepo repository.TodoRepository
	logger   *slog.Logger
}

// TodoServiceParams holds dependencies for TodoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TodoRepo repository.TodoRepository
	Logger   *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		todoRepo: params.TodoRepo,
		logger:   params.Logger,
	}
}

func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create persists a new todo owned by the caller.
func (srv *todoService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateTodoInput) (*entity.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "title must not be empty")
	}

	todo := &entity.Todo{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
	}

	if err := srv.todoRepo.Create(ctx, todo); err != nil {
		srv.log(ctx).Error("Failed to create todo", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create todo")
	}

	srv.log(ctx).Debug("Todo created", slog.Any("userID", userID), slog.Any("todoID", todo.ID))

	return todo, nil
}

// GetByID returns the caller's todo or ErrTodoNotFound.
func (srv *todoService) GetByID(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error) {
	return srv.loadOwned(ctx, userID, todoID)
}

// List returns a page of the caller's todos, newest first, with the total count.
func (srv *todoService) List(ctx context.Context, userID uuid.UUID, input *usecase.ListTodosInput) (*usecase.ListTodosOutput, error) {
	page, limit := normalizePagination(input.Page, input.Limit)

	todos, total, err := srv.todoRepo.ListByOwner(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		srv.log(ctx).Error("Failed to list todos", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list todos")
	}

	return &usecase.ListTodosOutput{
		Data:  todos,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// Update applies a full update to the caller's todo and refreshes updated_at.
func (srv *todoService) Update(ctx context.Context, userID, todoID uuid.UUID, input *usecase.UpdateTodoInput) (*entity.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "title must not be empty")
	}

	todo, err := srv.loadOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.Title = title
	todo.Description = input.Description
	todo.Completed = input.Completed
	todo.UpdatedAt = time.Now().UTC()

	if err := srv.todoRepo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found")
		}
		srv.log(ctx).Error("Failed to update todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update todo")
	}

	return todo, nil
}

// Delete removes the caller's todo.
func (srv *todoService) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	// Fetch first so the guard sees the same owner-filtered view the
	// mutation will use.
	if _, err := srv.loadOwned(ctx, userID, todoID); err != nil {
		return err
	}

	if err := srv.todoRepo.Delete(ctx, todoID, userID); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found")
		}
		srv.log(ctx).Error("Failed to delete todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete todo")
	}

	srv.log(ctx).Debug("Todo deleted", slog.Any("userID", userID), slog.Any("todoID", todoID))

	return nil
}

// loadOwned fetches the caller's todo with the owner predicate pushed into
// the query, then runs the ownership guard over the result.
func (srv *todoService) loadOwned(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error) {
	todo, err := srv.todoRepo.FindByIDAndOwner(ctx, todoID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found")
		}

		return nil, errors.Wrap(err, "failed to load todo")
	}

	if err := authorizeOwner(userID, todo.UserID); err != nil {
		return nil, err
	}

	return todo, nil
}

func normalizePagination(page, limit int) (int, int) {
	if page <= 0 {
		page = usecase.DefaultPage
	}
	if limit <= 0 {
		limit = usecase.DefaultLimit
	}
	if limit > usecase.MaxLimit {
		limit = usecase.MaxLimit
	}

	return page, limit
}
