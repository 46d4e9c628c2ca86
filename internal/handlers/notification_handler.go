package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/repositories"
)

// NotificationHandler serves the authenticated user's notification inbox.
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers the inbox routes on an
// authenticated group.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/unread-count", h.UnreadCount)
	g.PUT("/read-all", h.MarkAllRead)
	g.PUT("/:id/read", h.MarkRead)
	g.DELETE("/:id", h.Delete)
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	notifications, err := h.notifications.ListByRecipient(c.Request().Context(), userID, page)
	if err != nil {
		return err
	}

	payload := map[string]any{"notifications": notifications}
	if len(notifications) > 0 {
		if cursor := nextCursor(len(notifications), page, notifications[len(notifications)-1].UpdatedAt); cursor != "" {
			payload["nextCursor"] = cursor
		}
	}
	return respond(c, http.StatusOK, "Notifications fetched successfully", payload)
}

// UnreadCount returns the number of unread notifications.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifications.CountUnread(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Unread count fetched successfully", map[string]any{"count": count})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	matched, err := h.notifications.MarkRead(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	if !matched {
		return apperrors.NotFound("notification")
	}
	return respond(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkAllRead(c.Request().Context(), userID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All notifications marked as read", nil)
}

// Delete soft-deletes one of the caller's notifications.
func (h *NotificationHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	matched, err := h.notifications.SoftDelete(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	if !matched {
		return apperrors.NotFound("notification")
	}
	return respond(c, http.StatusOK, "Notification deleted successfully", nil)
}
