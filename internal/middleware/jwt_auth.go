package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
)

// JWTAuthMiddleware checks for a valid JWT and stores the claims on the
// context under "user". The token is read from the auth cookie first, then
// from a Bearer Authorization header.
func JWTAuthMiddleware(secret, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c, cookieName)
			if tokenString == "" {
				return apperrors.Unauthorized("missing authentication token")
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, apperrors.InvalidToken("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return apperrors.InvalidToken("invalid or expired token")
			}

			c.Set("user", claims)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// ClaimsFrom returns the authenticated user's claims, or nil when the
// request did not pass JWTAuthMiddleware.
func ClaimsFrom(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}
