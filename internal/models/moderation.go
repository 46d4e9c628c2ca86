package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModerationStatus is the review state of a recipe. A recipe starts pending,
// a moderator moves it to approved or rejected, and an edit by the author
// resets it to pending for re-review.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// Moderation is the review-status companion document to a Recipe, stored in
// the "moderations" collection. There is one active record per recipe.
type Moderation struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	ForPost     primitive.ObjectID  `json:"forPost" bson:"forPost"`
	ModeratedBy *primitive.ObjectID `json:"moderatedBy,omitempty" bson:"moderatedBy,omitempty"`
	Status      ModerationStatus    `json:"status" bson:"status"`
	Notes       string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
	DeletedAt   *time.Time          `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// ModerateRequest defines the request body for a moderation decision
type ModerateRequest struct {
	Status ModerationStatus `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string           `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
