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

func TestUpdateProfileAppliesProvidedFields(t *testing.T) {
	user := &models.User{FirstName: "Maria", LastName: "Santos", Bio: "old bio"}
	svc := NewUserService(newFakeUserRepo(user))

	updated, err := svc.UpdateProfile(context.Background(), user.ID, models.UpdateProfileRequest{
		Bio:        "I cook Bicolano food",
		MiddleName: "Reyes",
	})
	require.NoError(t, err)
	assert.Equal(t, "I cook Bicolano food", updated.Bio)
	assert.Equal(t, "Maria Reyes Santos", updated.FullName())
	assert.Equal(t, "Maria", updated.FirstName, "untouched fields keep their value")
}

func TestChangeRole(t *testing.T) {
	user := &models.User{FirstName: "Ben", Role: models.RoleUser}
	repo := newFakeUserRepo(user)
	svc := NewUserService(repo)

	updated, err := svc.ChangeRole(context.Background(), user.ID, models.RoleCreator)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCreator, updated.Role)
	assert.Equal(t, models.RoleCreator, repo.users[user.ID].Role)
}

func TestDeleteAccountRules(t *testing.T) {
	admin := &models.User{FirstName: "Liza", Role: models.RoleAdmin}
	creator := &models.User{FirstName: "Jose", Role: models.RoleCreator}
	regular := &models.User{FirstName: "Ana", Role: models.RoleUser}
	other := &models.User{FirstName: "Carlo", Role: models.RoleUser}

	repo := newFakeUserRepo(admin, creator, regular, other)
	svc := NewUserService(repo)
	ctx := context.Background()

	// a regular user cannot delete someone else
	err := svc.Delete(ctx, other.ID, regular.ID, models.RoleUser)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	// a regular user can delete themselves
	require.NoError(t, svc.Delete(ctx, regular.ID, regular.ID, models.RoleUser))
	assert.NotNil(t, repo.users[regular.ID].DeletedAt)

	// an admin can delete any non-admin
	require.NoError(t, svc.Delete(ctx, creator.ID, admin.ID, models.RoleAdmin))

	// nobody deletes an admin, not even the admin themselves
	err = svc.Delete(ctx, admin.ID, admin.ID, models.RoleAdmin)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	assert.Nil(t, repo.users[admin.ID].DeletedAt)
}

func TestGetUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
