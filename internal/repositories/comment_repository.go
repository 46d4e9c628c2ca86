package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kulinarya/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	ListByPost(ctx context.Context, postID primitive.ObjectID, page models.PageQuery) ([]models.CommentWithUser, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func (r *MongoCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	filter := bson.M{"_id": id, "$and": bson.A{models.NotDeleted()}}

	var comment models.Comment
	err := r.collection.FindOne(ctx, filter).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *MongoCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"content":   comment.Content,
		"updatedAt": comment.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": comment.ID}, update)
	return err
}

func (r *MongoCommentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"deletedAt": now,
		"updatedAt": now,
	}})
	return err
}

func (r *MongoCommentRepository) ListByPost(ctx context.Context, postID primitive.ObjectID, page models.PageQuery) ([]models.CommentWithUser, error) {
	page = page.Clamped()
	match := bson.M{"fromPost": postID, "$and": bson.A{models.NotDeleted()}}
	if page.Cursor != nil {
		match["createdAt"] = bson.M{"$lt": *page.Cursor}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{"createdAt": -1}},
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

	var comments []models.CommentWithUser
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
