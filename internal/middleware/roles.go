package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
)

// CheckRole allows the request through only when the authenticated user
// holds one of the given roles. Must run after JWTAuthMiddleware.
func CheckRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return apperrors.Unauthorized("missing authentication token")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return apperrors.Forbidden("insufficient permissions")
		}
	}
}
