package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a document in the "comments" collection. Many per
// (recipe, user); editable only by its author; soft-deletable.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FromPost  primitive.ObjectID `json:"fromPost" bson:"fromPost"`
	ByUser    primitive.ObjectID `json:"byUser" bson:"byUser"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// CommentWithUser is a comment joined with its author's display fields.
type CommentWithUser struct {
	Comment `bson:",inline"`
	User    AuthorPreview `json:"user" bson:"user"`
}
