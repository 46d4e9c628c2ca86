package handlers

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
)

// respond writes the standard response envelope: success, statusCode and
// message, with any payload fields merged in at the top level.
func respond(c echo.Context, status int, message string, payload map[string]any) error {
	body := map[string]any{
		"success":    status < 400,
		"statusCode": status,
		"message":    message,
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// objectIDParam parses a path parameter as a Mongo ObjectID.
func objectIDParam(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperrors.InvalidInput("invalid " + name)
	}
	return id, nil
}

// currentUserID returns the authenticated user's ID from the JWT claims.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	if claims == nil {
		return primitive.NilObjectID, apperrors.Unauthorized("missing authentication token")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, apperrors.InvalidToken("invalid token subject")
	}
	return id, nil
}

func currentRole(c echo.Context) models.Role {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	if claims == nil {
		return ""
	}
	return claims.Role
}

// parsePage reads the limit and cursor query parameters. The cursor is an
// RFC3339 timestamp taken from the last item of the previous page.
func parsePage(c echo.Context) (models.PageQuery, error) {
	var page models.PageQuery

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 {
			return page, apperrors.InvalidInput("invalid limit")
		}
		page.Limit = limit
	}
	if raw := c.QueryParam("cursor"); raw != "" {
		cursor, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return page, apperrors.InvalidInput("invalid cursor")
		}
		page.Cursor = &cursor
	}
	return page.Clamped(), nil
}

// nextCursor derives the cursor for the following page from the timestamp
// of the last returned item. Empty when the page was not full.
func nextCursor(returned int, page models.PageQuery, lastCreatedAt time.Time) string {
	if int64(returned) < page.Limit {
		return ""
	}
	return lastCreatedAt.Format(time.RFC3339Nano)
}
