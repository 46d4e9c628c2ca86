package middleware

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/models"
)

// OptionalJWTAuth parses the session token when one is present and stores
// the claims, but lets the request through either way. Used by the
// analytics tracking routes, which accept guests.
func OptionalJWTAuth(secret, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c, cookieName)
			if tokenString == "" {
				return next(c)
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenUnverifiable
				}
				return []byte(secret), nil
			})
			if err == nil && token.Valid {
				c.Set("user", claims)
			}
			return next(c)
		}
	}
}
