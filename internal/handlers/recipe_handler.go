package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/services"
	"github.com/kulinarya/backend/pkg/storage"
)

// RecipeHandler handles recipe CRUD, listings, leaderboards and media
// upload.
type RecipeHandler struct {
	recipes    *services.RecipeService
	engagement *services.EngagementService
	media      *storage.MediaStorage
}

func NewRecipeHandler(recipes *services.RecipeService, engagement *services.EngagementService, media *storage.MediaStorage) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, engagement: engagement, media: media}
}

// RegisterPublicRecipeRoutes registers the routes that need no session.
func (h *RecipeHandler) RegisterPublicRecipeRoutes(g *echo.Group) {
	g.GET("", h.ListApproved)
	g.GET("/featured", h.ListFeatured)
	g.GET("/top/engaged", h.TopEngaged)
	g.GET("/top/reacted", h.TopReacted)
	g.GET("/top/viewed", h.TopViewed)
	g.GET("/:id", h.GetRecipe)
}

// RegisterRecipeRoutes registers the routes that require a session.
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.POST("", h.CreateRecipe)
	g.PUT("/:id", h.UpdateRecipe)
	g.DELETE("/:id", h.DeleteRecipe)
	g.POST("/media", h.UploadMedia)
}

// RegisterAdminRecipeRoutes registers the admin-only recipe routes.
func (h *RecipeHandler) RegisterAdminRecipeRoutes(g *echo.Group) {
	g.GET("/pending", h.ListPending)
	g.PUT("/:id/feature", h.ToggleFeature)
}

// CreateRecipe submits a new recipe into the moderation queue.
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.recipes.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Recipe submitted for moderation", map[string]any{"recipe": recipe})
}

// GetRecipe returns one recipe with its author, moderation status and
// engagement counters.
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	recipe, err := h.engagement.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Recipe fetched successfully", map[string]any{"recipe": recipe})
}

// ListApproved returns the public feed of approved recipes.
func (h *RecipeHandler) ListApproved(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	q := models.RecipeListQuery{
		Page:           page,
		FoodCategory:   models.FoodCategory(c.QueryParam("foodCategory")),
		OriginProvince: c.QueryParam("originProvince"),
		Search:         c.QueryParam("search"),
	}
	recipes, err := h.engagement.ListApproved(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return h.respondList(c, recipes, page)
}

// ListPending returns the moderation queue. Admin only.
func (h *RecipeHandler) ListPending(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	recipes, err := h.engagement.ListPending(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return h.respondList(c, recipes, page)
}

// ListFeatured returns the featured recipes.
func (h *RecipeHandler) ListFeatured(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	recipes, err := h.engagement.ListFeatured(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return h.respondList(c, recipes, page)
}

// UpdateRecipe edits a recipe and sends it back through moderation.
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.recipes.Update(c.Request().Context(), id, userID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Recipe updated and resubmitted for moderation", map[string]any{"recipe": recipe})
}

// DeleteRecipe soft-deletes a recipe. Author or admin.
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.recipes.SoftDelete(c.Request().Context(), id, userID, currentRole(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Recipe deleted successfully", nil)
}

// ToggleFeature flips the featured flag of an approved recipe. Admin only.
func (h *RecipeHandler) ToggleFeature(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	recipe, err := h.recipes.ToggleFeature(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Recipe feature flag updated", map[string]any{"recipe": recipe})
}

// UploadMedia stores a recipe picture or video and returns its public URL.
func (h *RecipeHandler) UploadMedia(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return apperrors.InvalidInput("missing file")
	}

	src, err := file.Open()
	if err != nil {
		return apperrors.InvalidInput("unreadable file")
	}
	defer src.Close()

	url, err := h.media.Upload(c.Request().Context(), file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Media uploaded successfully", map[string]any{"url": url})
}

// TopEngaged returns this month's recipes by total engagement.
func (h *RecipeHandler) TopEngaged(c echo.Context) error {
	return h.leaderboard(c, h.engagement.TopEngaged)
}

// TopReacted returns this month's recipes by reaction count.
func (h *RecipeHandler) TopReacted(c echo.Context) error {
	return h.leaderboard(c, h.engagement.TopReacted)
}

// TopViewed returns this month's recipes by view count.
func (h *RecipeHandler) TopViewed(c echo.Context) error {
	return h.leaderboard(c, h.engagement.TopViewed)
}

func (h *RecipeHandler) leaderboard(c echo.Context, fetch func(ctx context.Context, limit int64) ([]models.RecipeWithEngagement, error)) error {
	limit := int64(models.DefaultPageLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return apperrors.InvalidInput("invalid limit")
		}
		limit = parsed
	}
	if limit > models.MaxPageLimit {
		limit = models.MaxPageLimit
	}

	recipes, err := fetch(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Recipes fetched successfully", map[string]any{"recipes": recipes})
}

// respondList wraps a recipe page with its next-page cursor.
func (h *RecipeHandler) respondList(c echo.Context, recipes []models.RecipeWithEngagement, page models.PageQuery) error {
	payload := map[string]any{"recipes": recipes}
	if len(recipes) > 0 {
		if cursor := nextCursor(len(recipes), page, recipes[len(recipes)-1].CreatedAt); cursor != "" {
			payload["nextCursor"] = cursor
		}
	}
	return respond(c, http.StatusOK, "Recipes fetched successfully", payload)
}
