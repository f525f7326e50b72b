package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"tasklist/internal/delivery/http/middleware"
	"tasklist/internal/delivery/http/response"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TodoHandler holds dependencies for todo-related handlers. Every handler
// resolves the caller from the context set by the auth middleware, so a todo
// is only ever visible to its owner.
type TodoHandler struct {
	uc     usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(uc usecase.TodoUsecase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var input *usecase.CreateTodoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid todo input")
	}

	todo, err := h.uc.Create(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, todo, "Todo created successfully")
}

// List handles GET /todos with page and limit query parameters.
func (h *TodoHandler) List(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	// Unparsable values fall back to zero and get normalized downstream.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	output, err := h.uc.List(c.Request().Context(), userID, &usecase.ListTodosInput{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Todos retrieved successfully")
}

// GetByID handles GET /todos/:id.
func (h *TodoHandler) GetByID(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "TODO_NOT_FOUND", "Todo not found")
	}

	todo, err := h.uc.GetByID(c.Request().Context(), userID, todoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, todo, "Todo retrieved successfully")
}

// Update handles PUT /todos/:id.
func (h *TodoHandler) Update(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "TODO_NOT_FOUND", "Todo not found")
	}

	var input *usecase.UpdateTodoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid todo input")
	}

	todo, err := h.uc.Update(c.Request().Context(), userID, todoID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, todo, "Todo updated successfully")
}

// Delete handles DELETE /todos/:id.
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "TODO_NOT_FOUND", "Todo not found")
	}

	if err := h.uc.Delete(c.Request().Context(), userID, todoID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// callerID reads the authenticated user's ID set by the auth middleware.
func callerID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)

	return userID, ok
}
