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

func newModerationFixture() (*ModerationService, *fakeRecipeRepo, *fakeModerationRepo, *fakeNotificationRepo, *models.Recipe, *models.Moderation, *models.User) {
	author := &models.User{ID: primitive.NewObjectID(), FirstName: "Maria", LastName: "Santos"}
	moderator := &models.User{ID: primitive.NewObjectID(), FirstName: "Liza", Role: models.RoleAdmin}

	recipe := &models.Recipe{
		ID:     primitive.NewObjectID(),
		ByUser: author.ID,
		Title:  "Adobo",
		Status: models.StatusPending,
	}
	moderation := &models.Moderation{
		ID:      primitive.NewObjectID(),
		ForPost: recipe.ID,
		Status:  models.StatusPending,
	}
	recipe.ModerationID = &moderation.ID

	recipes := newFakeRecipeRepo(recipe)
	moderations := newFakeModerationRepo(moderation)
	notifications := &fakeNotificationRepo{}
	users := newFakeUserRepo(author, moderator)

	svc := NewModerationService(moderations, recipes, users, NewNotificationService(notifications))
	return svc, recipes, moderations, notifications, recipe, moderation, moderator
}

func TestModerateApprovesAndMirrorsStatus(t *testing.T) {
	svc, recipes, _, notifications, recipe, moderation, moderator := newModerationFixture()

	result, err := svc.Moderate(context.Background(), moderation.ID, models.StatusApproved, "looks great", moderator.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, "looks great", result.Notes)
	require.NotNil(t, result.ModeratedBy)
	assert.Equal(t, moderator.ID, *result.ModeratedBy)

	assert.Equal(t, models.StatusApproved, recipes.recipes[recipe.ID].Status, "recipe must mirror the decision")

	require.Len(t, notifications.notifications, 1)
	n := notifications.notifications[0]
	assert.Equal(t, recipe.ByUser, n.ForUser)
	assert.Equal(t, models.NotificationModeration, n.Type)
	assert.Equal(t, "Liza approved your recipe: Adobo. Notes: looks great", n.Content)
}

func TestModerateRepeatDecisionIsNoOp(t *testing.T) {
	svc, _, _, notifications, _, moderation, moderator := newModerationFixture()

	_, err := svc.Moderate(context.Background(), moderation.ID, models.StatusApproved, "", moderator.ID)
	require.NoError(t, err)
	require.Len(t, notifications.notifications, 1)

	// same status and notes again
	_, err = svc.Moderate(context.Background(), moderation.ID, models.StatusApproved, "", moderator.ID)
	require.NoError(t, err)
	assert.Len(t, notifications.notifications, 1, "repeat decision must not re-notify")
}

func TestModerateChangedNotesUpdates(t *testing.T) {
	svc, _, moderations, notifications, _, moderation, moderator := newModerationFixture()

	_, err := svc.Moderate(context.Background(), moderation.ID, models.StatusRejected, "too dark", moderator.ID)
	require.NoError(t, err)

	// same status, different notes: a real update
	result, err := svc.Moderate(context.Background(), moderation.ID, models.StatusRejected, "photo too dark", moderator.ID)
	require.NoError(t, err)
	assert.Equal(t, "photo too dark", result.Notes)
	assert.Equal(t, "photo too dark", moderations.records[moderation.ID].Notes)

	// the collapsible notification was rewritten, not duplicated
	require.Len(t, notifications.notifications, 1)
	assert.Contains(t, notifications.notifications[0].Content, "photo too dark")
}

func TestModerateOwnRecipeForbidden(t *testing.T) {
	svc, _, _, _, recipe, moderation, _ := newModerationFixture()

	_, err := svc.Moderate(context.Background(), moderation.ID, models.StatusApproved, "", recipe.ByUser)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestModerateUnknownRecordNotFound(t *testing.T) {
	svc, _, _, _, _, _, moderator := newModerationFixture()

	_, err := svc.Moderate(context.Background(), primitive.NewObjectID(), models.StatusApproved, "", moderator.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
