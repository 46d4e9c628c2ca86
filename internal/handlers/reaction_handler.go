package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
	"github.com/kulinarya/backend/internal/services"
)

// ReactionHandler handles the reaction toggle and per-recipe listings.
type ReactionHandler struct {
	reactions    *services.ReactionService
	reactionRepo repositories.ReactionRepository
}

func NewReactionHandler(reactions *services.ReactionService, reactionRepo repositories.ReactionRepository) *ReactionHandler {
	return &ReactionHandler{reactions: reactions, reactionRepo: reactionRepo}
}

// RegisterReactionRoutes registers reaction routes on the recipes group.
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/:id/reactions", h.Toggle)
}

// RegisterPublicReactionRoutes registers the listing, open to guests.
func (h *ReactionHandler) RegisterPublicReactionRoutes(g *echo.Group) {
	g.GET("/:id/reactions", h.ListByPost)
}

// Toggle creates, changes or removes the caller's reaction on a recipe.
// Sending the active kind removes it; any other kind replaces it.
func (h *ReactionHandler) Toggle(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reaction, err := h.reactions.Toggle(c.Request().Context(), recipeID, userID, req.Reaction)
	if err != nil {
		return err
	}

	message := "Reaction saved"
	if !reaction.Active() {
		message = "Reaction removed"
	}
	return respond(c, http.StatusOK, message, map[string]any{"reaction": reaction})
}

// ListByPost returns the active reactions on a recipe with their users.
func (h *ReactionHandler) ListByPost(c echo.Context) error {
	recipeID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	reactions, err := h.reactionRepo.ListActiveByPost(c.Request().Context(), recipeID, page)
	if err != nil {
		return err
	}

	payload := map[string]any{"reactions": reactions}
	if len(reactions) > 0 {
		if cursor := nextCursor(len(reactions), page, reactions[len(reactions)-1].UpdatedAt); cursor != "" {
			payload["nextCursor"] = cursor
		}
	}
	return respond(c, http.StatusOK, "Reactions fetched successfully", payload)
}
