package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/services"
)

// UserHandler handles profile and account administration requests.
type UserHandler struct {
	users *services.UserService
	auth  *services.AuthService
}

func NewUserHandler(users *services.UserService, auth *services.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// RegisterUserRoutes registers user routes on an authenticated group.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.PUT("/me", h.UpdateProfile)
	g.PUT("/me/password", h.ChangePassword)
	g.GET("/:id", h.GetUser)
	g.DELETE("/:id", h.DeleteUser)
}

// RegisterAdminUserRoutes registers the admin-only user routes.
func (h *UserHandler) RegisterAdminUserRoutes(g *echo.Group) {
	g.PUT("/:id/role", h.ChangeRole)
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User fetched successfully", map[string]any{"user": user})
}

// GetUser returns a user's public profile by ID.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User fetched successfully", map[string]any{"user": user})
}

// UpdateProfile updates the caller's own profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", map[string]any{"user": user})
}

// ChangePassword changes the caller's password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}

// ChangeRole assigns a role to an account. Admin only.
func (h *UserHandler) ChangeRole(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.ChangeRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Role updated successfully", map[string]any{"user": user})
}

// DeleteUser soft-deletes an account, subject to the role rules.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	targetID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), targetID, actorID, currentRole(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Account deleted successfully", nil)
}
