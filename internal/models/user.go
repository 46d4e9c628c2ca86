package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role controls what a user is allowed to do. Creators can moderate recipes,
// admins additionally manage users, featured recipes and announcements.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleUser    Role = "user"
)

// User represents an account document in the "users" collection.
type User struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email             string             `json:"email" bson:"email"`
	Password          string             `json:"-" bson:"password"` // bcrypt hash, never serialized
	IsEmailVerified   bool               `json:"isEmailVerified" bson:"isEmailVerified"`
	Role              Role               `json:"role" bson:"role"`
	FirstName         string             `json:"firstName" bson:"firstName"`
	MiddleName        string             `json:"middleName,omitempty" bson:"middleName,omitempty"`
	LastName          string             `json:"lastName" bson:"lastName"`
	ProfilePictureURL string             `json:"profilePictureUrl,omitempty" bson:"profilePictureUrl,omitempty"`
	Bio               string             `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
	DeletedAt         *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// FullName joins the name parts, skipping an empty middle name.
func (u *User) FullName() string {
	if u.MiddleName == "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.MiddleName + " " + u.LastName
}

// AuthorPreview is the author projection joined into recipe and comment
// list views.
type AuthorPreview struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName         string             `json:"firstName" bson:"firstName"`
	MiddleName        string             `json:"middleName,omitempty" bson:"middleName,omitempty"`
	LastName          string             `json:"lastName" bson:"lastName"`
	ProfilePictureURL string             `json:"profilePictureUrl,omitempty" bson:"profilePictureUrl,omitempty"`
	Bio               string             `json:"bio,omitempty" bson:"bio,omitempty"`
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResendVerificationRequest defines the request body for resending the
// verification email
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordRequest defines the request body for requesting a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the request body for resetting a password
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	FirstName         string `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	MiddleName        string `json:"middleName,omitempty" validate:"omitempty,max=50"`
	LastName          string `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty" validate:"omitempty,url"`
	Bio               string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// ChangePasswordRequest defines the request body for changing a password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// ChangeRoleRequest defines the request body for an admin role change
type ChangeRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin creator user"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	jwt.RegisteredClaims
}
