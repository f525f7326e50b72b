package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasklist/internal/delivery/http/middleware"
	"tasklist/internal/domain/entity"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubTodoUsecase struct {
	todo    *entity.Todo
	listOut *usecase.ListTodosOutput
	err     error

	lastUserID uuid.UUID
	lastTodoID uuid.UUID
	lastList   *usecase.ListTodosInput
}

func (s *stubTodoUsecase) Create(_ context.Context, userID uuid.UUID, _ *usecase.CreateTodoInput) (*entity.Todo, error) {
	s.lastUserID = userID

	return s.todo, s.err
}

func (s *stubTodoUsecase) GetByID(_ context.Context, userID, todoID uuid.UUID) (*entity.Todo, error) {
	s.lastUserID = userID
	s.lastTodoID = todoID

	return s.todo, s.err
}

func (s *stubTodoUsecase) List(_ context.Context, userID uuid.UUID, input *usecase.ListTodosInput) (*usecase.ListTodosOutput, error) {
	s.lastUserID = userID
	s.lastList = input

	return s.listOut, s.err
}

func (s *stubTodoUsecase) Update(_ context.Context, userID, todoID uuid.UUID, _ *usecase.UpdateTodoInput) (*entity.Todo, error) {
	s.lastUserID = userID
	s.lastTodoID = todoID

	return s.todo, s.err
}

func (s *stubTodoUsecase) Delete(_ context.Context, userID, todoID uuid.UUID) error {
	s.lastUserID = userID
	s.lastTodoID = todoID

	return s.err
}

func sampleTodo(owner uuid.UUID) *entity.Todo {
	now := time.Now().UTC()

	return &entity.Todo{
		ID:        uuid.New(),
		UserID:    owner,
		Title:     "Buy milk",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// authedContext builds an echo context with the caller's user ID already set,
// as the auth middleware would have done.
func authedContext(t *testing.T, method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	c, rec := newEchoContext(t, method, target, body)
	c.Set(middleware.KeyUserID, userID)

	return c, rec
}

func TestTodoHandler_Create(t *testing.T) {
	t.Parallel()

	t.Run("returns 201 with the created todo", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		stub := &stubTodoUsecase{todo: sampleTodo(owner)}
		h := NewTodoHandler(stub, newDiscardLogger())

		c, rec := authedContext(t, http.MethodPost, "/todos", `{"title":"Buy milk"}`, owner)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, owner, stub.lastUserID)
		assert.Contains(t, rec.Body.String(), "Buy milk")
		// Owner ID never appears in the payload.
		assert.NotContains(t, rec.Body.String(), owner.String())
	})

	t.Run("returns 401 without an authenticated caller", func(t *testing.T) {
		t.Parallel()

		h := NewTodoHandler(&stubTodoUsecase{}, newDiscardLogger())

		c, rec := newEchoContext(t, http.MethodPost, "/todos", `{"title":"Buy milk"}`)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns 400 when the title is missing", func(t *testing.T) {
		t.Parallel()

		h := NewTodoHandler(&stubTodoUsecase{}, newDiscardLogger())

		c, rec := authedContext(t, http.MethodPost, "/todos", `{"description":"no title"}`, uuid.New())

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTodoHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("passes pagination through and returns the page", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		stub := &stubTodoUsecase{
			listOut: &usecase.ListTodosOutput{
				Data:  []*entity.Todo{sampleTodo(owner)},
				Page:  2,
				Limit: 5,
				Total: 11,
			},
		}
		h := NewTodoHandler(stub, newDiscardLogger())

		c, rec := authedContext(t, http.MethodGet, "/todos?page=2&limit=5", "", owner)

		require.NoError(t, h.List(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.lastList)
		assert.Equal(t, 2, stub.lastList.Page)
		assert.Equal(t, 5, stub.lastList.Limit)

		var envelope struct {
			Data usecase.ListTodosOutput `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, int64(11), envelope.Data.Total)
		assert.Len(t, envelope.Data.Data, 1)
	})

	t.Run("defaults unparsable pagination to zero", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		stub := &stubTodoUsecase{listOut: &usecase.ListTodosOutput{Page: 1, Limit: 10}}
		h := NewTodoHandler(stub, newDiscardLogger())

		c, rec := authedContext(t, http.MethodGet, "/todos?page=abc&limit=xyz", "", owner)

		require.NoError(t, h.List(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.lastList)
		assert.Zero(t, stub.lastList.Page)
		assert.Zero(t, stub.lastList.Limit)
	})
}

func TestTodoHandler_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("returns the todo for a valid id", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		todo := sampleTodo(owner)
		stub := &stubTodoUsecase{todo: todo}
		h := NewTodoHandler(stub, newDiscardLogger())

		c, rec := authedContext(t, http.MethodGet, "/todos/"+todo.ID.String(), "", owner)
		c.SetParamNames("id")
		c.SetParamValues(todo.ID.String())

		require.NoError(t, h.GetByID(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, todo.ID, stub.lastTodoID)
	})

	t.Run("answers 404 for a malformed id", func(t *testing.T) {
		t.Parallel()

		h := NewTodoHandler(&stubTodoUsecase{}, newDiscardLogger())

		c, rec := authedContext(t, http.MethodGet, "/todos/not-a-uuid", "", uuid.New())
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		require.NoError(t, h.GetByID(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("propagates usecase errors", func(t *testing.T) {
		t.Parallel()

		stub := &stubTodoUsecase{err: errors.New("todo not found")}
		h := NewTodoHandler(stub, newDiscardLogger())

		todoID := uuid.New()
		c, _ := authedContext(t, http.MethodGet, "/todos/"+todoID.String(), "", uuid.New())
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())

		require.Error(t, h.GetByID(c))
	})
}

func TestTodoHandler_Update(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	todo := sampleTodo(owner)
	todo.Completed = true
	stub := &stubTodoUsecase{todo: todo}
	h := NewTodoHandler(stub, newDiscardLogger())

	c, rec := authedContext(t, http.MethodPut, "/todos/"+todo.ID.String(),
		`{"title":"Buy milk","completed":true}`, owner)
	c.SetParamNames("id")
	c.SetParamValues(todo.ID.String())

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, todo.ID, stub.lastTodoID)
	assert.Contains(t, rec.Body.String(), `"completed":true`)
}

func TestTodoHandler_Delete(t *testing.T) {
	t.Parallel()

	t.Run("answers 204 with no body", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		todoID := uuid.New()
		stub := &stubTodoUsecase{}
		h := NewTodoHandler(stub, newDiscardLogger())

		c, rec := authedContext(t, http.MethodDelete, "/todos/"+todoID.String(), "", owner)
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())

		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, owner, stub.lastUserID)
		assert.Equal(t, todoID, stub.lastTodoID)
	})

	t.Run("propagates usecase errors", func(t *testing.T) {
		t.Parallel()

		stub := &stubTodoUsecase{err: errors.New("todo not found")}
		h := NewTodoHandler(stub, newDiscardLogger())

		todoID := uuid.New()
		c, _ := authedContext(t, http.MethodDelete, "/todos/"+todoID.String(), "", uuid.New())
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())

		require.Error(t, h.Delete(c))
	})
}
