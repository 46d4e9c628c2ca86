package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/services"
)

// AnalyticsHandler handles visit and view tracking plus the admin
// dashboard summary.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// RegisterAnalyticsRoutes registers the tracking routes. They are open to
// guests; an authenticated session upgrades the viewer key.
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group) {
	g.POST("/visits", h.TrackVisit)
	g.POST("/views/:id", h.TrackPostView)
}

// RegisterAdminAnalyticsRoutes registers the dashboard routes.
func (h *AnalyticsHandler) RegisterAdminAnalyticsRoutes(g *echo.Group) {
	g.GET("/visits/summary", h.VisitSummary)
	g.GET("/views/:id/count", h.PostViewCount)
}

// TrackVisit records a platform visit, debounced per viewer.
func (h *AnalyticsHandler) TrackVisit(c echo.Context) error {
	viewer, err := h.viewerFrom(c)
	if err != nil {
		return err
	}

	visit, err := h.analytics.TrackPlatformVisit(c.Request().Context(), viewer)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Visit recorded", map[string]any{"visit": visit})
}

// TrackPostView records a view on a recipe, debounced per viewer.
func (h *AnalyticsHandler) TrackPostView(c echo.Context) error {
	recipeID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	viewer, err := h.viewerFrom(c)
	if err != nil {
		return err
	}

	view, err := h.analytics.TrackPostView(c.Request().Context(), recipeID, viewer)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "View recorded", map[string]any{"view": view})
}

// VisitSummary returns the visit split over a date range. Defaults to the
// last 30 days.
func (h *AnalyticsHandler) VisitSummary(c echo.Context) error {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.InvalidInput("invalid from")
		}
		from = parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.InvalidInput("invalid to")
		}
		to = parsed
	}
	if !from.Before(to) {
		return apperrors.InvalidInput("from must be before to")
	}

	summary, err := h.analytics.VisitSummary(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Visit summary fetched successfully", map[string]any{"summary": summary})
}

// PostViewCount returns the total view count of one recipe.
func (h *AnalyticsHandler) PostViewCount(c echo.Context) error {
	recipeID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	count, err := h.analytics.PostViewCount(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "View count fetched successfully", map[string]any{"count": count})
}

// viewerFrom resolves the viewer key: the session user when present,
// otherwise the client-supplied guest key, otherwise the remote IP.
func (h *AnalyticsHandler) viewerFrom(c echo.Context) (models.Viewer, error) {
	if claims, _ := c.Get("user").(*models.JwtCustomClaims); claims != nil {
		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return models.Viewer{}, apperrors.InvalidToken("invalid token subject")
		}
		return models.Viewer{UserID: &id}, nil
	}

	var req models.TrackVisitRequest
	if err := c.Bind(&req); err == nil && req.GuestKey != "" {
		if err := c.Validate(&req); err != nil {
			return models.Viewer{}, err
		}
		return models.Viewer{GuestKey: req.GuestKey}, nil
	}
	return models.Viewer{GuestKey: c.RealIP()}, nil
}
