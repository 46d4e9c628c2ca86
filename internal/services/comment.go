package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// CommentService manages recipe comments and dispatches the comment
// notification to the recipe author.
type CommentService struct {
	comments repositories.CommentRepository
	recipes  repositories.RecipeRepository
	users    repositories.UserRepository
	notifier *NotificationService
}

func NewCommentService(
	comments repositories.CommentRepository,
	recipes repositories.RecipeRepository,
	users repositories.UserRepository,
	notifier *NotificationService,
) *CommentService {
	return &CommentService{
		comments: comments,
		recipes:  recipes,
		users:    users,
		notifier: notifier,
	}
}

// Create adds a comment to a recipe and notifies its author. Comment
// notifications are append-only, one per comment.
func (s *CommentService) Create(ctx context.Context, recipeID, userID primitive.ObjectID, content string) (*models.Comment, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}

	comment := &models.Comment{
		FromPost: recipeID,
		ByUser:   userID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	actorName := "Someone"
	if actor, err := s.users.FindByID(ctx, userID); err == nil && actor != nil {
		actorName = actor.FullName()
	}
	if _, err := s.notifier.Upsert(ctx, NotifyParams{
		ActorID:     userID,
		RecipientID: recipe.ByUser,
		PostID:      recipeID,
		Type:        models.NotificationComment,
		ActorName:   actorName,
		RecipeTitle: recipe.Title,
	}); err != nil {
		return nil, err
	}
	return comment, nil
}

// Update edits a comment. Only the author may edit.
func (s *CommentService) Update(ctx context.Context, commentID, userID primitive.ObjectID, content string) (*models.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperrors.NotFound("comment")
	}
	if comment.ByUser != userID {
		return nil, apperrors.Forbidden("you can only edit your own comments")
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes a comment. The author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, commentID, actorID primitive.ObjectID, actorRole models.Role) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperrors.NotFound("comment")
	}
	if comment.ByUser != actorID && actorRole != models.RoleAdmin {
		return apperrors.Forbidden("you can only delete your own comments")
	}
	return s.comments.SoftDelete(ctx, commentID)
}

func (s *CommentService) ListByPost(ctx context.Context, postID primitive.ObjectID, page models.PageQuery) ([]models.CommentWithUser, error) {
	return s.comments.ListByPost(ctx, postID, page)
}
