package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// RecipeService owns the recipe lifecycle and its coupling to the
// moderation record: creation opens a pending review, any author edit
// reopens it, and both documents carry the same status at every step.
type RecipeService struct {
	recipes     repositories.RecipeRepository
	moderations repositories.ModerationRepository
}

func NewRecipeService(recipes repositories.RecipeRepository, moderations repositories.ModerationRepository) *RecipeService {
	return &RecipeService{recipes: recipes, moderations: moderations}
}

// Create stores a new recipe with a pending moderation record and wires
// the back-reference between the two.
func (s *RecipeService) Create(ctx context.Context, authorID primitive.ObjectID, req models.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := &models.Recipe{
		ByUser:         authorID,
		Title:          req.Title,
		FoodCategory:   req.FoodCategory,
		OriginProvince: req.OriginProvince,
		PictureURL:     req.PictureURL,
		VideoURL:       req.VideoURL,
		Description:    req.Description,
		Ingredients:    req.Ingredients,
		Procedure:      req.Procedure,
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	moderation := &models.Moderation{
		ForPost: recipe.ID,
		Status:  models.StatusPending,
	}
	if err := s.moderations.Create(ctx, moderation); err != nil {
		return nil, err
	}

	if err := s.recipes.SetModeration(ctx, recipe.ID, moderation.ID); err != nil {
		return nil, err
	}
	recipe.ModerationID = &moderation.ID

	return recipe, nil
}

// Update applies an author's edit and resets the moderation pair to
// pending so the recipe is re-reviewed.
func (s *RecipeService) Update(ctx context.Context, recipeID, authorID primitive.ObjectID, req models.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}
	if recipe.ByUser != authorID {
		return nil, apperrors.Forbidden("only the author can edit this recipe")
	}

	if req.Title != "" {
		recipe.Title = req.Title
	}
	if req.FoodCategory != "" {
		recipe.FoodCategory = req.FoodCategory
	}
	if req.OriginProvince != "" {
		recipe.OriginProvince = req.OriginProvince
	}
	if req.PictureURL != "" {
		recipe.PictureURL = req.PictureURL
	}
	if req.VideoURL != "" {
		recipe.VideoURL = req.VideoURL
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if len(req.Ingredients) > 0 {
		recipe.Ingredients = req.Ingredients
	}
	if len(req.Procedure) > 0 {
		recipe.Procedure = req.Procedure
	}

	recipe.Status = models.StatusPending
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}

	moderation, err := s.moderations.FindByPost(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	if moderation != nil && moderation.Status != models.StatusPending {
		moderation.Status = models.StatusPending
		moderation.Notes = ""
		moderation.ModeratedBy = nil
		if err := s.moderations.Update(ctx, moderation); err != nil {
			return nil, err
		}
	}

	return recipe, nil
}

// SoftDelete hides a recipe. Allowed for its author and for admins.
func (s *RecipeService) SoftDelete(ctx context.Context, recipeID, actorID primitive.ObjectID, actorRole models.Role) error {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return apperrors.NotFound("recipe")
	}
	if recipe.ByUser != actorID && actorRole != models.RoleAdmin {
		return apperrors.Forbidden("only the author or an admin can delete this recipe")
	}
	return s.recipes.SoftDelete(ctx, recipeID)
}

// ToggleFeature flips the featured flag. Only approved recipes can be
// featured.
func (s *RecipeService) ToggleFeature(ctx context.Context, recipeID primitive.ObjectID) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}
	if !recipe.IsFeatured && recipe.Status != models.StatusApproved {
		return nil, apperrors.InvalidInput("only approved recipes can be featured")
	}

	recipe.IsFeatured = !recipe.IsFeatured
	if err := s.recipes.SetFeatured(ctx, recipeID, recipe.IsFeatured); err != nil {
		return nil, err
	}
	return recipe, nil
}
