package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// ReactionService implements the per-(recipe, user) reaction toggle and
// keeps the companion notification in sync through the upsert.
type ReactionService struct {
	reactions repositories.ReactionRepository
	recipes   repositories.RecipeRepository
	users     repositories.UserRepository
	notifier  *NotificationService
}

func NewReactionService(
	reactions repositories.ReactionRepository,
	recipes repositories.RecipeRepository,
	users repositories.UserRepository,
	notifier *NotificationService,
) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		recipes:   recipes,
		users:     users,
		notifier:  notifier,
	}
}

// Toggle moves the user's reaction on a recipe through its state machine:
//
//	none            -> reacted(kind)   create, or restore the soft-deleted record
//	reacted(kind)   -> none            same kind again soft-deletes (toggle-off)
//	reacted(other)  -> reacted(kind)   different kind overwrites in place
//
// At most one reaction document ever exists for the pair. Each transition
// dispatches the reaction notification; only the toggle-off is a removal.
func (s *ReactionService) Toggle(
	ctx context.Context,
	recipeID, userID primitive.ObjectID,
	kind models.ReactionKind,
) (*models.Reaction, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}

	existing, err := s.reactions.FindByPostAndUser(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	var (
		result      *models.Reaction
		oldReaction *models.ReactionKind
		isRemoval   bool
	)

	switch {
	case existing == nil:
		reaction := kind
		result = &models.Reaction{
			FromPost: recipeID,
			ByUser:   userID,
			Reaction: &reaction,
		}
		if err := s.reactions.Create(ctx, result); err != nil {
			return nil, err
		}

	case !existing.Active():
		reaction := kind
		existing.Reaction = &reaction
		existing.DeletedAt = nil
		if err := s.reactions.Update(ctx, existing); err != nil {
			return nil, err
		}
		result = existing

	case *existing.Reaction == kind:
		// toggle-off
		now := timeNow()
		existing.Reaction = nil
		existing.DeletedAt = &now
		if err := s.reactions.Update(ctx, existing); err != nil {
			return nil, err
		}
		result = existing
		isRemoval = true

	default:
		previous := *existing.Reaction
		oldReaction = &previous
		reaction := kind
		existing.Reaction = &reaction
		if err := s.reactions.Update(ctx, existing); err != nil {
			return nil, err
		}
		result = existing
	}

	actorName := "Someone"
	if actor, err := s.users.FindByID(ctx, userID); err == nil && actor != nil {
		actorName = actor.FirstName
	}

	if _, err := s.notifier.Upsert(ctx, NotifyParams{
		ActorID:     userID,
		RecipientID: recipe.ByUser,
		PostID:      recipe.ID,
		Type:        models.NotificationReaction,
		ActorName:   actorName,
		RecipeTitle: recipe.Title,
		OldReaction: oldReaction,
		NewReaction: kind,
		IsRemoval:   isRemoval,
	}); err != nil {
		return nil, err
	}

	return result, nil
}
