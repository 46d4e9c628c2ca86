package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// AnalyticsService records platform visits and per-recipe views with a
// debounce: a repeat event from the same viewer inside the window is
// rejected instead of recorded. The check-then-insert is best effort; two
// concurrent requests can both pass the check, which is acceptable for an
// analytics counter.
type AnalyticsService struct {
	visits  repositories.PlatformVisitRepository
	views   repositories.PostViewRepository
	recipes repositories.RecipeRepository

	visitWindow time.Duration
	viewWindow  time.Duration
}

func NewAnalyticsService(
	visits repositories.PlatformVisitRepository,
	views repositories.PostViewRepository,
	recipes repositories.RecipeRepository,
	visitWindow, viewWindow time.Duration,
) *AnalyticsService {
	return &AnalyticsService{
		visits:      visits,
		views:       views,
		recipes:     recipes,
		visitWindow: visitWindow,
		viewWindow:  viewWindow,
	}
}

// TrackPlatformVisit records a visit unless the viewer already visited
// within the debounce window.
func (s *AnalyticsService) TrackPlatformVisit(ctx context.Context, viewer models.Viewer) (*models.PlatformVisit, error) {
	recent, err := s.visits.FindSince(ctx, viewer, timeNow().Add(-s.visitWindow))
	if err != nil {
		return nil, err
	}
	if recent != nil {
		return nil, apperrors.TooManyRequests("visit already recorded for this viewer")
	}

	visit := &models.PlatformVisit{
		VisitType: viewer.Type(),
		ByUser:    viewer.UserID,
		ByGuest:   viewer.GuestKey,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// TrackPostView records a view of a recipe unless the viewer already
// viewed it within the debounce window.
func (s *AnalyticsService) TrackPostView(ctx context.Context, recipeID primitive.ObjectID, viewer models.Viewer) (*models.PostView, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}

	recent, err := s.views.FindSince(ctx, recipeID, viewer, timeNow().Add(-s.viewWindow))
	if err != nil {
		return nil, err
	}
	if recent != nil {
		return nil, apperrors.TooManyRequests("view already recorded for this viewer")
	}

	view := &models.PostView{
		FromPost: recipeID,
		ViewType: viewer.Type(),
		ByUser:   viewer.UserID,
		ByGuest:  viewer.GuestKey,
	}
	if err := s.views.Create(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

// VisitSummary returns the guest/user visit split over a date range for
// the admin dashboard.
func (s *AnalyticsService) VisitSummary(ctx context.Context, from, to time.Time) (models.VisitSummary, error) {
	return s.visits.Summary(ctx, from, to)
}

// PostViewCount returns the all-time view total of a recipe.
func (s *AnalyticsService) PostViewCount(ctx context.Context, recipeID primitive.ObjectID) (int64, error) {
	return s.views.CountByPost(ctx, recipeID)
}
