package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/services"
)

// AnnouncementHandler handles platform announcements.
type AnnouncementHandler struct {
	announcements *services.AnnouncementService
}

func NewAnnouncementHandler(announcements *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// RegisterAnnouncementRoutes registers the public read routes.
func (h *AnnouncementHandler) RegisterAnnouncementRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// RegisterAdminAnnouncementRoutes registers the admin-only write routes.
func (h *AnnouncementHandler) RegisterAdminAnnouncementRoutes(g *echo.Group) {
	g.POST("", h.Publish)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Publish creates an announcement and fans out its notifications.
func (h *AnnouncementHandler) Publish(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ann, err := h.announcements.Publish(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Announcement published successfully", map[string]any{"announcement": ann})
}

// Get returns one announcement.
func (h *AnnouncementHandler) Get(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ann, err := h.announcements.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Announcement fetched successfully", map[string]any{"announcement": ann})
}

// Update edits an announcement. Editing does not re-notify.
func (h *AnnouncementHandler) Update(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ann, err := h.announcements.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Announcement updated successfully", map[string]any{"announcement": ann})
}

// Delete soft-deletes an announcement.
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.announcements.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Announcement deleted successfully", nil)
}

// List returns announcements, newest first.
func (h *AnnouncementHandler) List(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	announcements, err := h.announcements.List(c.Request().Context(), page)
	if err != nil {
		return err
	}

	payload := map[string]any{"announcements": announcements}
	if len(announcements) > 0 {
		if cursor := nextCursor(len(announcements), page, announcements[len(announcements)-1].CreatedAt); cursor != "" {
			payload["nextCursor"] = cursor
		}
	}
	return respond(c, http.StatusOK, "Announcements fetched successfully", payload)
}
