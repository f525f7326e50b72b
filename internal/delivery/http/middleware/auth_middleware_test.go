package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserUsecase accepts exactly one token and resolves it to a fixed user.
type stubUserUsecase struct {
	validToken string
	userID     uuid.UUID
}

func (s *stubUserUsecase) Register(context.Context, *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserUsecase) Login(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserUsecase) ResolveIdentity(_ context.Context, rawToken string) (uuid.UUID, error) {
	if rawToken == s.validToken {
		return s.userID, nil
	}

	return uuid.Nil, errors.New("token verification failed")
}

func runAuthenticate(t *testing.T, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	userID := uuid.New()
	m := NewAuthMiddleware(&stubUserUsecase{validToken: "good-token", userID: userID})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, userID, nextCalled
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("passes a valid bearer token through", func(t *testing.T) {
		t.Parallel()

		rec, _, nextCalled := runAuthenticate(t, "Bearer good-token")
		assert.True(t, nextCalled)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		t.Parallel()

		rec, _, nextCalled := runAuthenticate(t, "")
		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		t.Parallel()

		rec, _, nextCalled := runAuthenticate(t, "Basic Zm9vOmJhcg==")
		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		t.Parallel()

		rec, _, nextCalled := runAuthenticate(t, "Bearer forged-token")
		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("all rejections share the same body", func(t *testing.T) {
		t.Parallel()

		missing, _, _ := runAuthenticate(t, "")
		badScheme, _, _ := runAuthenticate(t, "Basic Zm9vOmJhcg==")
		forged, _, _ := runAuthenticate(t, "Bearer forged-token")

		assert.Equal(t, missing.Body.String(), badScheme.Body.String())
		assert.Equal(t, missing.Body.String(), forged.Body.String())
	})

	t.Run("stores the resolved user ID on the context", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		m := NewAuthMiddleware(&stubUserUsecase{validToken: "good-token", userID: userID})

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var seen uuid.UUID
		handler := m.Authenticate(func(c echo.Context) error {
			seen, _ = c.Get(KeyUserID).(uuid.UUID)

			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, handler(c))
		assert.Equal(t, userID, seen)
	})
}
