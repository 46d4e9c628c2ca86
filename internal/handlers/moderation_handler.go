package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
	"github.com/kulinarya/backend/internal/services"
)

// ModerationHandler handles the moderation queue and decisions. All routes
// are restricted to admins and creators except the per-recipe lookup.
type ModerationHandler struct {
	moderation     *services.ModerationService
	moderationRepo repositories.ModerationRepository
}

func NewModerationHandler(moderation *services.ModerationService, moderationRepo repositories.ModerationRepository) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, moderationRepo: moderationRepo}
}

// RegisterModerationRoutes registers moderation routes on a group already
// guarded by the moderator role check.
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group) {
	g.GET("", h.ListByStatus)
	g.PUT("/:id", h.Moderate)
}

// RegisterRecipeModerationRoutes registers the per-recipe lookup for
// authenticated users.
func (h *ModerationHandler) RegisterRecipeModerationRoutes(g *echo.Group) {
	g.GET("/:id/moderation", h.ForRecipe)
}

// ListByStatus returns moderation records filtered by status, defaulting
// to the pending queue.
func (h *ModerationHandler) ListByStatus(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	status := models.ModerationStatus(c.QueryParam("status"))
	if status == "" {
		status = models.StatusPending
	}
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		return apperrors.InvalidInput("invalid status")
	}

	records, err := h.moderationRepo.ListByStatus(c.Request().Context(), status, page)
	if err != nil {
		return err
	}

	payload := map[string]any{"moderations": records}
	if len(records) > 0 {
		if cursor := nextCursor(len(records), page, records[len(records)-1].UpdatedAt); cursor != "" {
			payload["nextCursor"] = cursor
		}
	}
	return respond(c, http.StatusOK, "Moderations fetched successfully", payload)
}

// Moderate applies an approve or reject decision.
func (h *ModerationHandler) Moderate(c echo.Context) error {
	moderatorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ModerateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	moderation, err := h.moderation.Moderate(c.Request().Context(), id, req.Status, req.Notes, moderatorID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Moderation decision applied", map[string]any{"moderation": moderation})
}

// ForRecipe returns the moderation record of one recipe.
func (h *ModerationHandler) ForRecipe(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	moderation, err := h.moderation.ForRecipe(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Moderation fetched successfully", map[string]any{"moderation": moderation})
}
