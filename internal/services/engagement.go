package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// EngagementService is the read side: aggregated recipe views and the
// monthly leaderboards. It never mutates anything.
type EngagementService struct {
	recipes repositories.RecipeRepository
}

func NewEngagementService(recipes repositories.RecipeRepository) *EngagementService {
	return &EngagementService{recipes: recipes}
}

// Detail returns a recipe with author, moderation status, engagement
// counters and latest comment preview.
func (s *EngagementService) Detail(ctx context.Context, recipeID primitive.ObjectID) (*models.RecipeWithEngagement, error) {
	detail, err := s.recipes.DetailByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperrors.NotFound("recipe")
	}
	return detail, nil
}

func (s *EngagementService) ListApproved(ctx context.Context, q models.RecipeListQuery) ([]models.RecipeWithEngagement, error) {
	return s.recipes.ListApproved(ctx, q)
}

func (s *EngagementService) ListPending(ctx context.Context, page models.PageQuery) ([]models.RecipeWithEngagement, error) {
	return s.recipes.ListByStatus(ctx, models.StatusPending, page)
}

func (s *EngagementService) ListFeatured(ctx context.Context, page models.PageQuery) ([]models.RecipeWithEngagement, error) {
	return s.recipes.ListFeatured(ctx, page)
}

// TopEngaged ranks approved recipes by comments+reactions+views received
// this calendar month.
func (s *EngagementService) TopEngaged(ctx context.Context, limit int64) ([]models.RecipeWithEngagement, error) {
	return s.recipes.TopEngaged(ctx, startOfMonth(timeNow()), limit)
}

func (s *EngagementService) TopReacted(ctx context.Context, limit int64) ([]models.RecipeWithEngagement, error) {
	return s.recipes.TopReacted(ctx, startOfMonth(timeNow()), limit)
}

func (s *EngagementService) TopViewed(ctx context.Context, limit int64) ([]models.RecipeWithEngagement, error) {
	return s.recipes.TopViewed(ctx, startOfMonth(timeNow()), limit)
}
