package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionKind is the set of reactions a user can leave on a recipe.
type ReactionKind string

const (
	ReactionHeart   ReactionKind = "heart"
	ReactionDrool   ReactionKind = "drool"
	ReactionNeutral ReactionKind = "neutral"
)

// Reaction is a document in the "reactions" collection. At most one logical
// reaction exists per (recipe, user) pair; a soft-deleted record with a nil
// kind means the user currently has no reaction but reacted before.
type Reaction struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FromPost  primitive.ObjectID `json:"fromPost" bson:"fromPost"`
	ByUser    primitive.ObjectID `json:"byUser" bson:"byUser"`
	Reaction  *ReactionKind      `json:"reaction" bson:"reaction"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// Active reports whether the record represents a current reaction.
func (r *Reaction) Active() bool {
	return r.DeletedAt == nil && r.Reaction != nil
}

// ToggleReactionRequest defines the request body for the reaction toggle
type ToggleReactionRequest struct {
	Reaction ReactionKind `json:"reaction" validate:"required,oneof=heart drool neutral"`
}

// ReactionWithUser is a reaction joined with the reacting user's display
// fields for the per-recipe reaction listing.
type ReactionWithUser struct {
	Reaction `bson:",inline"`
	User     AuthorPreview `json:"user" bson:"user"`
}
