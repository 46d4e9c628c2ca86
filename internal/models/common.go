package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// NotDeleted is the shared soft-delete filter: a record is live when its
// deletedAt is null or was never written. Every repository query that should
// exclude soft-deleted records composes this into its filter.
func NotDeleted() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"deletedAt": nil},
		bson.M{"deletedAt": bson.M{"$exists": false}},
	}}
}

// PageQuery is the cursor-pagination input shared by all list endpoints.
// Cursor is the createdAt/updatedAt timestamp of the last item of the
// previous page; nil means start from the newest record.
type PageQuery struct {
	Limit  int64
	Cursor *time.Time
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// Clamped returns the query with its limit forced into [1, MaxPageLimit].
func (q PageQuery) Clamped() PageQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}
