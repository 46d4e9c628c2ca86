package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kulinarya/backend/internal/models"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	// FindByPostAndUser returns the pair's reaction record including a
	// soft-deleted one, so the toggle can restore it.
	FindByPostAndUser(ctx context.Context, postID, userID primitive.ObjectID) (*models.Reaction, error)
	Create(ctx context.Context, reaction *models.Reaction) error
	Update(ctx context.Context, reaction *models.Reaction) error
	ListActiveByPost(ctx context.Context, postID primitive.ObjectID, page models.PageQuery) ([]models.ReactionWithUser, error)
}

// MongoReactionRepository implements ReactionRepository for MongoDB
type MongoReactionRepository struct {
	collection *mongo.Collection
}

// NewMongoReactionRepository creates a new MongoReactionRepository
func NewMongoReactionRepository(db *mongo.Database) *MongoReactionRepository {
	return &MongoReactionRepository{collection: db.Collection("reactions")}
}

func (r *MongoReactionRepository) FindByPostAndUser(ctx context.Context, postID, userID primitive.ObjectID) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.collection.FindOne(ctx, bson.M{"fromPost": postID, "byUser": userID}).Decode(&reaction)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *MongoReactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	reaction.ID = primitive.NewObjectID()
	reaction.CreatedAt = time.Now()
	reaction.UpdatedAt = reaction.CreatedAt
	_, err := r.collection.InsertOne(ctx, reaction)
	return err
}

// Update writes the full toggle-relevant state of the record: kind and
// deletedAt together, so restore and soft-delete are single-document writes.
func (r *MongoReactionRepository) Update(ctx context.Context, reaction *models.Reaction) error {
	reaction.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"reaction":  reaction.Reaction,
		"deletedAt": reaction.DeletedAt,
		"updatedAt": reaction.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": reaction.ID}, update)
	return err
}

func (r *MongoReactionRepository) ListActiveByPost(ctx context.Context, postID primitive.ObjectID, page models.PageQuery) ([]models.ReactionWithUser, error) {
	page = page.Clamped()
	match := bson.M{
		"fromPost":  postID,
		"reaction":  bson.M{"$ne": nil},
		"deletedAt": nil,
	}
	if page.Cursor != nil {
		match["updatedAt"] = bson.M{"$lt": *page.Cursor}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{"updatedAt": -1}},
		{"$limit": page.Limit},
		{"$lookup": bson.M{
			"from": "users",
			"let":  bson.M{"userId": "$byUser"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$userId"}}}},
				{"$project": bson.M{
					"firstName":         1,
					"middleName":        1,
					"lastName":          1,
					"profilePictureUrl": 1,
				}},
			},
			"as": "user",
		}},
		{"$unwind": bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reactions []models.ReactionWithUser
	if err := cursor.All(ctx, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}
