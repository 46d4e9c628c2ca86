package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VisitType records whether an analytics event came from an authenticated
// user or an anonymous guest.
type VisitType string

const (
	VisitGuest VisitType = "guest"
	VisitUser  VisitType = "user"
)

// PlatformVisit is an append-mostly counter document in the
// "platformvisits" collection. At most one record per viewer key within the
// platform-visit debounce window (1 hour).
type PlatformVisit struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	VisitType VisitType           `json:"visitType" bson:"visitType"`
	ByUser    *primitive.ObjectID `json:"byUser,omitempty" bson:"byUser,omitempty"`
	ByGuest   string              `json:"byGuest,omitempty" bson:"byGuest,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time          `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// PostView is a per-recipe view counter document in the "postviews"
// collection. At most one record per (post, viewer key) within the
// post-view debounce window (1 day).
type PostView struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	FromPost  primitive.ObjectID  `json:"fromPost" bson:"fromPost"`
	ViewType  VisitType           `json:"viewType" bson:"viewType"`
	ByUser    *primitive.ObjectID `json:"byUser,omitempty" bson:"byUser,omitempty"`
	ByGuest   string              `json:"byGuest,omitempty" bson:"byGuest,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time          `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// Viewer identifies who produced an analytics event: an authenticated user
// ID, or a guest key (client-supplied token or remote IP) otherwise.
type Viewer struct {
	UserID   *primitive.ObjectID
	GuestKey string
}

// Type returns the visit type the viewer key resolves to.
func (v Viewer) Type() VisitType {
	if v.UserID != nil {
		return VisitUser
	}
	return VisitGuest
}

// TrackVisitRequest carries the optional guest key of an anonymous viewer.
// Authenticated requests ignore it and use the user ID instead.
type TrackVisitRequest struct {
	GuestKey string `json:"guestKey,omitempty" validate:"omitempty,max=100"`
}

// VisitSummary is the admin dashboard split of visit counts over a range.
type VisitSummary struct {
	TotalVisits int64 `json:"totalVisits"`
	UserVisits  int64 `json:"userVisits"`
	GuestVisits int64 `json:"guestVisits"`
}
