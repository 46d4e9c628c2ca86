package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// UserService covers profile management and account administration.
type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}
	return user, nil
}

// UpdateProfile applies the provided fields to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.MiddleName != "" {
		user.MiddleName = req.MiddleName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfilePictureURL != "" {
		user.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole assigns a new role to an account. Admin only, guarded at the
// route level.
func (s *UserService) ChangeRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// Delete soft-deletes an account. Admins may delete any non-admin account,
// everyone else may only delete their own. Admin accounts are never
// deletable through this path.
func (s *UserService) Delete(ctx context.Context, targetID, actorID primitive.ObjectID, actorRole models.Role) error {
	target, err := s.Get(ctx, targetID)
	if err != nil {
		return err
	}

	if target.Role == models.RoleAdmin {
		return apperrors.Forbidden("admin accounts cannot be deleted")
	}
	if actorRole != models.RoleAdmin && targetID != actorID {
		return apperrors.Forbidden("you can only delete your own account")
	}

	return s.users.SoftDelete(ctx, targetID)
}
