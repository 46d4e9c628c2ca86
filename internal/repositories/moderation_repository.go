package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kulinarya/backend/internal/models"
)

// ModerationRepository defines the interface for moderation data operations
type ModerationRepository interface {
	Create(ctx context.Context, moderation *models.Moderation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Moderation, error)
	FindByPost(ctx context.Context, postID primitive.ObjectID) (*models.Moderation, error)
	Update(ctx context.Context, moderation *models.Moderation) error
	ListByStatus(ctx context.Context, status models.ModerationStatus, page models.PageQuery) ([]models.Moderation, error)
}

// MongoModerationRepository implements ModerationRepository for MongoDB
type MongoModerationRepository struct {
	collection *mongo.Collection
}

// NewMongoModerationRepository creates a new MongoModerationRepository
func NewMongoModerationRepository(db *mongo.Database) *MongoModerationRepository {
	return &MongoModerationRepository{collection: db.Collection("moderations")}
}

func (r *MongoModerationRepository) Create(ctx context.Context, moderation *models.Moderation) error {
	moderation.ID = primitive.NewObjectID()
	moderation.CreatedAt = time.Now()
	moderation.UpdatedAt = moderation.CreatedAt
	_, err := r.collection.InsertOne(ctx, moderation)
	return err
}

func (r *MongoModerationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Moderation, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByPost returns the single active moderation record of a recipe.
func (r *MongoModerationRepository) FindByPost(ctx context.Context, postID primitive.ObjectID) (*models.Moderation, error) {
	return r.findOne(ctx, bson.M{"forPost": postID})
}

func (r *MongoModerationRepository) findOne(ctx context.Context, filter bson.M) (*models.Moderation, error) {
	filter["$and"] = bson.A{models.NotDeleted()}

	var moderation models.Moderation
	err := r.collection.FindOne(ctx, filter).Decode(&moderation)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &moderation, nil
}

func (r *MongoModerationRepository) Update(ctx context.Context, moderation *models.Moderation) error {
	moderation.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"status":      moderation.Status,
		"notes":       moderation.Notes,
		"moderatedBy": moderation.ModeratedBy,
		"updatedAt":   moderation.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": moderation.ID}, update)
	return err
}

func (r *MongoModerationRepository) ListByStatus(ctx context.Context, status models.ModerationStatus, page models.PageQuery) ([]models.Moderation, error) {
	page = page.Clamped()
	filter := bson.M{"$and": bson.A{models.NotDeleted()}}
	if status != "" {
		filter["status"] = status
	}
	if page.Cursor != nil {
		filter["updatedAt"] = bson.M{"$lt": *page.Cursor}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(page.Limit)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var moderations []models.Moderation
	if err := cursor.All(ctx, &moderations); err != nil {
		return nil, err
	}
	return moderations, nil
}
