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

func newReactionFixture() (*ReactionService, *fakeReactionRepo, *fakeNotificationRepo, *models.Recipe, primitive.ObjectID) {
	author := &models.User{ID: primitive.NewObjectID(), FirstName: "Maria"}
	reactor := &models.User{ID: primitive.NewObjectID(), FirstName: "Ben"}

	recipe := &models.Recipe{
		ID:     primitive.NewObjectID(),
		ByUser: author.ID,
		Title:  "Sinigang",
		Status: models.StatusApproved,
	}

	reactions := &fakeReactionRepo{}
	notifications := &fakeNotificationRepo{}
	svc := NewReactionService(reactions, newFakeRecipeRepo(recipe), newFakeUserRepo(author, reactor), NewNotificationService(notifications))
	return svc, reactions, notifications, recipe, reactor.ID
}

// Walks the full toggle cycle: react, toggle off, react again with a
// different kind, then overwrite with another kind. One reaction record
// and one notification record exist throughout.
func TestToggleCycle(t *testing.T) {
	svc, reactions, notifications, recipe, userID := newReactionFixture()
	ctx := context.Background()

	// none -> heart
	r1, err := svc.Toggle(ctx, recipe.ID, userID, models.ReactionHeart)
	require.NoError(t, err)
	require.True(t, r1.Active())
	assert.Equal(t, models.ReactionHeart, *r1.Reaction)
	require.Len(t, notifications.live(), 1)
	assert.Equal(t, "Ben reacted (heart) on your recipe: Sinigang.", notifications.live()[0].Content)

	// heart -> none (toggle off)
	r2, err := svc.Toggle(ctx, recipe.ID, userID, models.ReactionHeart)
	require.NoError(t, err)
	assert.False(t, r2.Active())
	assert.Nil(t, r2.Reaction)
	assert.Empty(t, notifications.live(), "toggle-off must remove the notification")

	// none -> drool (restores the same record)
	r3, err := svc.Toggle(ctx, recipe.ID, userID, models.ReactionDrool)
	require.NoError(t, err)
	require.True(t, r3.Active())
	assert.Equal(t, models.ReactionDrool, *r3.Reaction)
	assert.Equal(t, r1.ID, r3.ID)
	require.Len(t, notifications.live(), 1)

	// drool -> neutral (overwrite)
	r4, err := svc.Toggle(ctx, recipe.ID, userID, models.ReactionNeutral)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionNeutral, *r4.Reaction)
	require.Len(t, notifications.live(), 1)
	assert.Equal(t, "Ben changed their reaction from (drool) to (neutral) on your recipe: Sinigang.", notifications.live()[0].Content)

	assert.Len(t, reactions.reactions, 1, "the pair owns exactly one reaction record")
	assert.Len(t, notifications.notifications, 1, "the pair owns exactly one notification record")
}

func TestToggleUnknownRecipe(t *testing.T) {
	svc, _, _, _, userID := newReactionFixture()

	_, err := svc.Toggle(context.Background(), primitive.NewObjectID(), userID, models.ReactionHeart)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestToggleOnOwnRecipeSkipsNotification(t *testing.T) {
	svc, reactions, notifications, recipe, _ := newReactionFixture()

	// the author reacts to their own recipe
	r, err := svc.Toggle(context.Background(), recipe.ID, recipe.ByUser, models.ReactionHeart)
	require.NoError(t, err)
	assert.True(t, r.Active())
	assert.Len(t, reactions.reactions, 1)
	assert.Empty(t, notifications.notifications)
}
