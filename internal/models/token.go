package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenPurpose distinguishes what a one-time token is for.
type TokenPurpose string

const (
	TokenEmailVerification TokenPurpose = "email_verification"
	TokenPasswordReset     TokenPurpose = "password_reset"
)

// AuthToken is a one-time token document in the "resettokens" collection,
// covering both email verification and password reset.
type AuthToken struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Token     string             `json:"-" bson:"token"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Purpose   TokenPurpose       `json:"purpose" bson:"purpose"`
	ExpiresAt time.Time          `json:"expiresAt" bson:"expiresAt"`
	UsedAt    *time.Time         `json:"usedAt,omitempty" bson:"usedAt,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Usable reports whether the token can still be redeemed at the given time.
func (t *AuthToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

// ResendAttempt is a throttling document in the "resendattempts"
// collection: how many verification or reset emails were sent to an address
// within the current window.
type ResendAttempt struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Purpose     TokenPurpose       `json:"purpose" bson:"purpose"`
	Count       int                `json:"count" bson:"count"`
	WindowStart time.Time          `json:"windowStart" bson:"windowStart"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
