package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the hot queries rely on: unique email,
// the notification idempotency key, reaction/moderation uniqueness per post
// and the debounce lookups on the analytics counters.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"recipes": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "byUser", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"moderations": {
			{Keys: bson.D{{Key: "forPost", Value: 1}}},
		},
		"reactions": {
			{Keys: bson.D{{Key: "fromPost", Value: 1}, {Key: "byUser", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"comments": {
			{Keys: bson.D{{Key: "fromPost", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "forUser", Value: 1}, {Key: "fromPost", Value: 1}, {Key: "type", Value: 1}}},
			{Keys: bson.D{{Key: "forUser", Value: 1}, {Key: "updatedAt", Value: -1}}},
		},
		"platformvisits": {
			{Keys: bson.D{{Key: "byUser", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "byGuest", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"postviews": {
			{Keys: bson.D{{Key: "fromPost", Value: 1}, {Key: "byUser", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "fromPost", Value: 1}, {Key: "byGuest", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"resettokens": {
			{Keys: bson.D{{Key: "token", Value: 1}, {Key: "purpose", Value: 1}}},
		},
		"resendattempts": {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "purpose", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
