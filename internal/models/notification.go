package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType distinguishes what produced a notification.
type NotificationType string

const (
	NotificationModeration   NotificationType = "moderation"
	NotificationReaction     NotificationType = "reaction"
	NotificationComment      NotificationType = "comment"
	NotificationAnnouncement NotificationType = "announcement"
)

// Collapsible reports whether repeated events for the same recipient and
// post update one notification in place instead of appending new ones.
func (t NotificationType) Collapsible() bool {
	return t == NotificationModeration || t == NotificationReaction
}

// Notification is a derived document in the "notifications" collection,
// created or updated as a side effect of moderation, reaction, comment and
// announcement events.
//
// For collapsible types, at most one non-deleted notification exists per
// (forUser, fromPost, type); byUser is stored for display but is not part
// of the idempotency key.
type Notification struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	ForUser   primitive.ObjectID  `json:"forUser" bson:"forUser"`
	ByUser    primitive.ObjectID  `json:"byUser" bson:"byUser"`
	FromPost  *primitive.ObjectID `json:"fromPost,omitempty" bson:"fromPost,omitempty"`
	Type      NotificationType    `json:"type" bson:"type"`
	Content   string              `json:"content" bson:"content"`
	IsRead    bool                `json:"isRead" bson:"isRead"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time          `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}
