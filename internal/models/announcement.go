package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is an admin-authored document in the "announcements"
// collection. Publishing one fans out announcement notifications to every
// verified account.
type Announcement struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ByUser    primitive.ObjectID `json:"byUser" bson:"byUser"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// CreateAnnouncementRequest defines the request body for publishing an announcement
type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=150"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// UpdateAnnouncementRequest defines the request body for editing an announcement
type UpdateAnnouncementRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Content string `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
}
