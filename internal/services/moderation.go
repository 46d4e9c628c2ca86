package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// ModerationService applies moderation decisions: it writes the moderation
// record and the recipe's status mirror together and dispatches the
// moderation notification.
type ModerationService struct {
	moderations repositories.ModerationRepository
	recipes     repositories.RecipeRepository
	users       repositories.UserRepository
	notifier    *NotificationService
}

func NewModerationService(
	moderations repositories.ModerationRepository,
	recipes repositories.RecipeRepository,
	users repositories.UserRepository,
	notifier *NotificationService,
) *ModerationService {
	return &ModerationService{
		moderations: moderations,
		recipes:     recipes,
		users:       users,
		notifier:    notifier,
	}
}

// Moderate transitions a moderation record to approved or rejected.
//
// Repeating the current status and notes is an idempotent no-op returning
// the record unchanged. Moderating one's own recipe is forbidden. The
// moderation write and the recipe status-mirror write are two separate
// single-document updates; a crash between them leaves the pair
// inconsistent until a later decision rewrites both.
func (s *ModerationService) Moderate(
	ctx context.Context,
	moderationID primitive.ObjectID,
	status models.ModerationStatus,
	notes string,
	moderatorID primitive.ObjectID,
) (*models.Moderation, error) {
	moderation, err := s.moderations.FindByID(ctx, moderationID)
	if err != nil {
		return nil, err
	}
	if moderation == nil {
		return nil, apperrors.NotFound("moderation record")
	}

	recipe, err := s.recipes.FindByID(ctx, moderation.ForPost)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}

	if recipe.ByUser == moderatorID {
		return nil, apperrors.Forbidden("you cannot moderate your own recipe")
	}

	if moderation.Status == status && moderation.Notes == notes {
		return moderation, nil
	}

	moderation.Status = status
	moderation.Notes = notes
	moderation.ModeratedBy = &moderatorID
	if err := s.moderations.Update(ctx, moderation); err != nil {
		return nil, err
	}

	if err := s.recipes.UpdateStatus(ctx, recipe.ID, status); err != nil {
		return nil, err
	}

	moderatorName := "A moderator"
	if moderator, err := s.users.FindByID(ctx, moderatorID); err == nil && moderator != nil {
		moderatorName = moderator.FirstName
	}

	if _, err := s.notifier.Upsert(ctx, NotifyParams{
		ActorID:     moderatorID,
		RecipientID: recipe.ByUser,
		PostID:      recipe.ID,
		Type:        models.NotificationModeration,
		ActorName:   moderatorName,
		RecipeTitle: recipe.Title,
		Decision:    status,
		Notes:       notes,
	}); err != nil {
		return nil, err
	}

	return moderation, nil
}

// ForRecipe fetches the active moderation record of a recipe.
func (s *ModerationService) ForRecipe(ctx context.Context, recipeID primitive.ObjectID) (*models.Moderation, error) {
	moderation, err := s.moderations.FindByPost(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if moderation == nil {
		return nil, apperrors.NotFound("moderation record")
	}
	return moderation, nil
}
