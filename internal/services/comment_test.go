package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
)

func newCommentFixture() (*CommentService, *fakeCommentRepo, *fakeNotificationRepo, *models.Recipe, *models.User) {
	author := &models.User{ID: primitive.NewObjectID(), FirstName: "Maria", LastName: "Santos"}
	commenter := &models.User{ID: primitive.NewObjectID(), FirstName: "Carlo", LastName: "Reyes"}

	recipe := &models.Recipe{
		ID:     primitive.NewObjectID(),
		ByUser: author.ID,
		Title:  "Kare-kare",
		Status: models.StatusApproved,
	}

	comments := &fakeCommentRepo{}
	notifications := &fakeNotificationRepo{}
	svc := NewCommentService(comments, newFakeRecipeRepo(recipe), newFakeUserRepo(author, commenter), NewNotificationService(notifications))
	return svc, comments, notifications, recipe, commenter
}

func TestCreateCommentNotifiesAuthor(t *testing.T) {
	svc, _, notifications, recipe, commenter := newCommentFixture()
	ctx := context.Background()

	comment, err := svc.Create(ctx, recipe.ID, commenter.ID, "Looks delicious!")
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, comment.FromPost)

	require.Len(t, notifications.notifications, 1)
	n := notifications.notifications[0]
	assert.Equal(t, recipe.ByUser, n.ForUser)
	assert.Equal(t, "Carlo Reyes commented on your recipe: Kare-kare.", n.Content)

	// a second comment appends a second notification
	_, err = svc.Create(ctx, recipe.ID, commenter.ID, "Made it twice already.")
	require.NoError(t, err)
	assert.Len(t, notifications.notifications, 2)
}

func TestCreateCommentOnOwnRecipeSkipsNotification(t *testing.T) {
	svc, comments, notifications, recipe, _ := newCommentFixture()

	_, err := svc.Create(context.Background(), recipe.ID, recipe.ByUser, "Forgot to mention: marinate overnight.")
	require.NoError(t, err)
	assert.Len(t, comments.comments, 1)
	assert.Empty(t, notifications.notifications)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	svc, _, _, recipe, commenter := newCommentFixture()
	ctx := context.Background()

	comment, err := svc.Create(ctx, recipe.ID, commenter.ID, "First try")
	require.NoError(t, err)

	_, err = svc.Update(ctx, comment.ID, primitive.NewObjectID(), "hijacked")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	updated, err := svc.Update(ctx, comment.ID, commenter.ID, "First try, turned out great")
	require.NoError(t, err)
	assert.Equal(t, "First try, turned out great", updated.Content)
}

func TestDeleteCommentPermissions(t *testing.T) {
	svc, comments, _, recipe, commenter := newCommentFixture()
	ctx := context.Background()

	comment, err := svc.Create(ctx, recipe.ID, commenter.ID, "temp")
	require.NoError(t, err)

	err = svc.Delete(ctx, comment.ID, primitive.NewObjectID(), models.RoleUser)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	require.NoError(t, svc.Delete(ctx, comment.ID, primitive.NewObjectID(), models.RoleAdmin))
	assert.NotNil(t, comments.comments[comment.ID].DeletedAt)
}
