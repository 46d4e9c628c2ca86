package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulinarya/backend/internal/models"
)

func TestPublishFansOutToVerifiedUsers(t *testing.T) {
	admin := &models.User{FirstName: "Liza", Role: models.RoleAdmin, IsEmailVerified: true}
	verified := &models.User{FirstName: "Maria", IsEmailVerified: true}
	alsoVerified := &models.User{FirstName: "Ben", IsEmailVerified: true}
	unverified := &models.User{FirstName: "Ana"}

	users := newFakeUserRepo(admin, verified, alsoVerified, unverified)
	notifications := &fakeNotificationRepo{}
	svc := NewAnnouncementService(&fakeAnnouncementRepo{}, users, notifications)

	ann, err := svc.Publish(context.Background(), admin.ID, models.CreateAnnouncementRequest{
		Title:   "Holiday recipes contest",
		Content: "Submit your best holiday recipe this December.",
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, ann.ByUser)

	// one notification per verified user, the author excluded
	require.Len(t, notifications.notifications, 2)
	recipients := map[string]bool{}
	for _, n := range notifications.notifications {
		assert.Equal(t, models.NotificationAnnouncement, n.Type)
		assert.Equal(t, "New announcement: Holiday recipes contest.", n.Content)
		assert.Equal(t, admin.ID, n.ByUser)
		recipients[n.ForUser.Hex()] = true
	}
	assert.True(t, recipients[verified.ID.Hex()])
	assert.True(t, recipients[alsoVerified.ID.Hex()])
	assert.False(t, recipients[admin.ID.Hex()])
	assert.False(t, recipients[unverified.ID.Hex()])
}

func TestAnnouncementUpdateDoesNotReNotify(t *testing.T) {
	admin := &models.User{FirstName: "Liza", Role: models.RoleAdmin, IsEmailVerified: true}
	reader := &models.User{FirstName: "Maria", IsEmailVerified: true}

	notifications := &fakeNotificationRepo{}
	svc := NewAnnouncementService(&fakeAnnouncementRepo{}, newFakeUserRepo(admin, reader), notifications)
	ctx := context.Background()

	ann, err := svc.Publish(ctx, admin.ID, models.CreateAnnouncementRequest{Title: "Maintenance", Content: "Down Sunday."})
	require.NoError(t, err)
	require.Len(t, notifications.notifications, 1)

	updated, err := svc.Update(ctx, ann.ID, models.UpdateAnnouncementRequest{Content: "Down Saturday instead."})
	require.NoError(t, err)
	assert.Equal(t, "Down Saturday instead.", updated.Content)
	assert.Len(t, notifications.notifications, 1)
}
