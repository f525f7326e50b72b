package middleware

import (
	"strings"

	"tasklist/internal/delivery/http/response"
	"tasklist/internal/usecase"

	"github.com/labstack/echo/v4"
)

// KeyUserID is the echo.Context key under which Authenticate stores the
// caller's resolved user ID.
const KeyUserID = "userID"

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	userUsecase usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(userUsecase usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{userUsecase: userUsecase}
}

// Authenticate validates the bearer token and stores the caller's user ID on
// the request context. Every failure mode answers with the same 401 so the
// response never reveals why a token was rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
		}

		userID, err := m.userUsecase.ResolveIdentity(c.Request().Context(), tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
		}

		c.Set(KeyUserID, userID)

		return next(c)
	}
}
